package acdex

import (
	"fmt"

	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

// AircraftType is the aircraft role.
type AircraftType string

// Aircraft role constants.
const (
	TypePax   AircraftType = "pax"
	TypeCargo AircraftType = "cargo"
	TypeVIP   AircraftType = "vip"
)

// Aircraft is one engine variant of an airframe.
type Aircraft struct {
	ID           uint16
	ShortName    string
	Manufacturer string
	Name         string
	Type         AircraftType

	Priority   uint8 // engine variant index, 0 = default
	EngineID   uint16
	EngineName string

	Speed       float64
	Fuel        float64
	CO2         float64
	Cost        uint32
	Capacity    uint32
	Rwy         uint16
	CheckCost   uint32
	Range       uint16
	Ceiling     uint16
	Maint       uint16
	Pilots      uint8
	Crew        uint8
	Engineers   uint8
	Technicians uint8
	Wingspan    uint8
	Length      uint8
}

// Result is a resolved query.
type Result struct {
	// Aircraft has the modifier flags applied.
	Aircraft Aircraft
	// Base is the selected variant as stored in the catalog.
	Base      Aircraft
	MatchedBy string // "id", "shortname" or "name"
	Engine    uint8
	Modifiers []string
}

// Suggestion is a ranked near match.
type Suggestion struct {
	Aircraft Aircraft
	Score    float64
}

// CatalogStats reports record and index sizes.
type CatalogStats struct {
	Records    int
	Variants   int
	ShortNames int
	Names      int
}

func aircraftFromDomain(a aircraft.Aircraft) Aircraft {
	return Aircraft{
		ID:           uint16(a.ID),
		ShortName:    a.ShortName,
		Manufacturer: a.Manufacturer,
		Name:         a.Name,
		Type:         AircraftType(a.Type.String()),
		Priority:     a.Priority,
		EngineID:     uint16(a.EngineID),
		EngineName:   a.EngineName,
		Speed:        a.Speed,
		Fuel:         a.Fuel,
		CO2:          a.CO2,
		Cost:         a.Cost,
		Capacity:     a.Capacity,
		Rwy:          a.Rwy,
		CheckCost:    a.CheckCost,
		Range:        a.Range,
		Ceiling:      a.Ceiling,
		Maint:        a.Maint,
		Pilots:       a.Pilots,
		Crew:         a.Crew,
		Engineers:    a.Engineers,
		Technicians:  a.Technicians,
		Wingspan:     a.Wingspan,
		Length:       a.Length,
	}
}

func aircraftToDomain(a Aircraft) (aircraft.Aircraft, error) {
	t, err := aircraft.ParseType(string(a.Type))
	if err != nil {
		return aircraft.Aircraft{}, fmt.Errorf("aircraft %d: %w", a.ID, err)
	}
	return aircraft.Aircraft{
		ID:           aircraft.ID(a.ID),
		ShortName:    a.ShortName,
		Manufacturer: a.Manufacturer,
		Name:         a.Name,
		Type:         t,
		Priority:     a.Priority,
		EngineID:     aircraft.EngineID(a.EngineID),
		EngineName:   a.EngineName,
		Speed:        a.Speed,
		Fuel:         a.Fuel,
		CO2:          a.CO2,
		Cost:         a.Cost,
		Capacity:     a.Capacity,
		Rwy:          a.Rwy,
		CheckCost:    a.CheckCost,
		Range:        a.Range,
		Ceiling:      a.Ceiling,
		Maint:        a.Maint,
		Pilots:       a.Pilots,
		Crew:         a.Crew,
		Engineers:    a.Engineers,
		Technicians:  a.Technicians,
		Wingspan:     a.Wingspan,
		Length:       a.Length,
	}, nil
}

func aircraftListFromDomain(list []aircraft.Aircraft) []Aircraft {
	out := make([]Aircraft, len(list))
	for i, a := range list {
		out[i] = aircraftFromDomain(a)
	}
	return out
}

func resultFromDomain(r searchuc.Result) Result {
	return Result{
		Aircraft:  aircraftFromDomain(r.Aircraft),
		Base:      aircraftFromDomain(r.Base),
		MatchedBy: r.MatchedBy.String(),
		Engine:    r.Clause.Engine,
		Modifiers: r.Clause.Mods.Names(),
	}
}

func suggestionsFromDomain(items []suggestion.Item) []Suggestion {
	out := make([]Suggestion, len(items))
	for i, it := range items {
		out[i] = Suggestion{Aircraft: aircraftFromDomain(it.Aircraft), Score: it.Score}
	}
	return out
}
