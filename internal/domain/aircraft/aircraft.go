package aircraft

import (
	"fmt"
	"strings"
)

// ID is the airframe identifier, shared by every engine variant of one type.
type ID uint16

// EngineID identifies one engine configuration across the whole catalog.
type EngineID uint16

// Type is the aircraft role.
type Type uint8

// Aircraft role constants.
const (
	Pax Type = iota
	Cargo
	VIP
)

// String returns the lowercase role name.
func (t Type) String() string {
	switch t {
	case Pax:
		return "pax"
	case Cargo:
		return "cargo"
	case VIP:
		return "vip"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// ParseType parses a role name (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pax", "":
		return Pax, nil
	case "cargo":
		return Cargo, nil
	case "vip":
		return VIP, nil
	default:
		return 0, fmt.Errorf("unknown aircraft type %q", s)
	}
}

// Aircraft is one engine variant of an airframe. Values are copied out of the
// catalog, so mutating a returned Aircraft never affects the catalog.
type Aircraft struct {
	ID           ID
	ShortName    string
	Manufacturer string
	Name         string
	Type         Type

	// Priority is the engine-variant index within the airframe; 0 is the default.
	Priority   uint8
	EngineID   EngineID
	EngineName string

	Speed       float64 // cruise speed, km/h
	Fuel        float64 // lbs/km
	CO2         float64 // kg per pax per km
	Cost        uint32
	Capacity    uint32
	Rwy         uint16 // ft
	CheckCost   uint32
	Range       uint16 // km
	Ceiling     uint16 // ft
	Maint       uint16 // hours between checks
	Pilots      uint8
	Crew        uint8
	Engineers   uint8
	Technicians uint8
	Wingspan    uint8 // m
	Length      uint8 // m
}

// IsDefault reports whether this is the canonical variant of its airframe.
func (a Aircraft) IsDefault() bool { return a.Priority == 0 }

// String renders a compact one-line description.
func (a Aircraft) String() string {
	return fmt.Sprintf("%s (%s) id=%d engine=%d/%s", a.Name, a.ShortName, a.ID, a.Priority, a.EngineName)
}

// NormalizeShortName lowercases and trims a short code for index lookups.
func NormalizeShortName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName lowercases and trims a display name for index lookups.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
