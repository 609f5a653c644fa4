// Package airport holds validated airport value types. Each type wraps an
// unexported field and can only be obtained through its constructor, so every
// live value has passed validation.
package airport

import (
	"errors"
	"fmt"
	"strconv"
)

// Name length bounds in bytes.
const (
	MinNameLength = 1
	MaxNameLength = 40
	IATALength    = 3
	ICAOLength    = 4
)

var (
	// ErrInvalidID signals an airport id that is not a uint16.
	ErrInvalidID = errors.New("invalid airport id")
	// ErrInvalidName signals a name outside the allowed length.
	ErrInvalidName = errors.New("invalid airport name")
	// ErrInvalidIATA signals an IATA code that is not 3 characters.
	ErrInvalidIATA = errors.New("invalid iata code")
	// ErrInvalidICAO signals an ICAO code that is not 4 characters.
	ErrInvalidICAO = errors.New("invalid icao code")
)

// ID is a validated airport identifier.
type ID struct{ v uint16 }

// NewID wraps an already numeric identifier.
func NewID(v uint16) ID { return ID{v: v} }

// ParseID parses a decimal uint16 airport id.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return ID{v: uint16(v)}, nil
}

// Uint16 returns the raw identifier.
func (id ID) Uint16() uint16 { return id.v }

func (id ID) String() string { return strconv.FormatUint(uint64(id.v), 10) }

// Name is a validated short airport name.
type Name struct{ v string }

// NewName validates the byte length of s.
func NewName(s string) (Name, error) {
	if len(s) < MinNameLength || len(s) > MaxNameLength {
		return Name{}, fmt.Errorf("%w: must be between %d and %d characters", ErrInvalidName, MinNameLength, MaxNameLength)
	}
	return Name{v: s}, nil
}

func (n Name) String() string { return n.v }

// IATA is a validated 3-letter IATA code.
type IATA struct{ v string }

// NewIATA validates that s is exactly 3 characters.
func NewIATA(s string) (IATA, error) {
	if len(s) != IATALength {
		return IATA{}, fmt.Errorf("%w: must be %d characters", ErrInvalidIATA, IATALength)
	}
	return IATA{v: s}, nil
}

func (c IATA) String() string { return c.v }

// ICAO is a validated 4-letter ICAO code.
type ICAO struct{ v string }

// NewICAO validates that s is exactly 4 characters.
func NewICAO(s string) (ICAO, error) {
	if len(s) != ICAOLength {
		return ICAO{}, fmt.Errorf("%w: must be %d characters", ErrInvalidICAO, ICAOLength)
	}
	return ICAO{v: s}, nil
}

func (c ICAO) String() string { return c.v }

// Point is a geographic position in degrees.
type Point struct {
	Lng float64
	Lat float64
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.Lng, p.Lat) }

// Raw is the unvalidated input for an Airport.
type Raw struct {
	ID        string
	Name      string
	Fullname  string
	Country   string
	Continent string
	IATA      string
	ICAO      string
	Location  Point
	Rwy       uint16
	Market    uint8
	HubCost   uint32
	RwyCodes  []string
}

// Airport is an airport entity built from validated values.
type Airport struct {
	ID        ID
	Name      Name
	Fullname  string
	Country   string
	Continent string
	IATA      IATA
	ICAO      ICAO
	Location  Point
	Rwy       uint16
	Market    uint8
	HubCost   uint32
	RwyCodes  []string
}

// New validates every constrained field of raw and builds an Airport.
// The first failing field determines the returned error.
func New(raw Raw) (Airport, error) {
	id, err := ParseID(raw.ID)
	if err != nil {
		return Airport{}, err
	}
	name, err := NewName(raw.Name)
	if err != nil {
		return Airport{}, err
	}
	iata, err := NewIATA(raw.IATA)
	if err != nil {
		return Airport{}, err
	}
	icao, err := NewICAO(raw.ICAO)
	if err != nil {
		return Airport{}, err
	}
	return Airport{
		ID:        id,
		Name:      name,
		Fullname:  raw.Fullname,
		Country:   raw.Country,
		Continent: raw.Continent,
		IATA:      iata,
		ICAO:      icao,
		Location:  raw.Location,
		Rwy:       raw.Rwy,
		Market:    raw.Market,
		HubCost:   raw.HubCost,
		RwyCodes:  append([]string(nil), raw.RwyCodes...),
	}, nil
}
