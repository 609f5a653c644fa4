package aircraft

import (
	"fmt"
	"slices"
	"strconv"

	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

// document is the on-disk catalog layout shared by every file format.
type document struct {
	Aircraft []airframe `yaml:"aircraft" json:"aircraft" msgpack:"aircraft"`
}

// airframe groups the engine variants of one aircraft type. The position of
// an engine in Engines is its priority.
type airframe struct {
	ID           uint16   `yaml:"id" json:"id" msgpack:"id"`
	ShortName    string   `yaml:"shortname" json:"shortname" msgpack:"shortname"`
	Manufacturer string   `yaml:"manufacturer" json:"manufacturer" msgpack:"manufacturer"`
	Name         string   `yaml:"name" json:"name" msgpack:"name"`
	Type         string   `yaml:"type" json:"type" msgpack:"type"`
	Cost         uint32   `yaml:"cost" json:"cost" msgpack:"cost"`
	Capacity     uint32   `yaml:"capacity" json:"capacity" msgpack:"capacity"`
	Rwy          uint16   `yaml:"rwy" json:"rwy" msgpack:"rwy"`
	CheckCost    uint32   `yaml:"check_cost" json:"check_cost" msgpack:"check_cost"`
	Range        uint16   `yaml:"range" json:"range" msgpack:"range"`
	Ceiling      uint16   `yaml:"ceiling" json:"ceiling" msgpack:"ceiling"`
	Maint        uint16   `yaml:"maint" json:"maint" msgpack:"maint"`
	Pilots       uint8    `yaml:"pilots" json:"pilots" msgpack:"pilots"`
	Crew         uint8    `yaml:"crew" json:"crew" msgpack:"crew"`
	Engineers    uint8    `yaml:"engineers" json:"engineers" msgpack:"engineers"`
	Technicians  uint8    `yaml:"technicians" json:"technicians" msgpack:"technicians"`
	Wingspan     uint8    `yaml:"wingspan" json:"wingspan" msgpack:"wingspan"`
	Length       uint8    `yaml:"length" json:"length" msgpack:"length"`
	Engines      []engine `yaml:"engines" json:"engines" msgpack:"engines"`
}

type engine struct {
	ID    uint16  `yaml:"id" json:"id" msgpack:"id"`
	Name  string  `yaml:"name" json:"name" msgpack:"name"`
	Speed float64 `yaml:"speed" json:"speed" msgpack:"speed"`
	Fuel  float64 `yaml:"fuel" json:"fuel" msgpack:"fuel"`
	CO2   float64 `yaml:"co2" json:"co2" msgpack:"co2"`
}

// flatten expands airframes into one record per engine variant.
func flatten(doc document) ([]domac.Aircraft, error) {
	var out []domac.Aircraft
	for _, af := range doc.Aircraft {
		if len(af.Engines) == 0 {
			return nil, fmt.Errorf("aircraft %d (%s): no engines", af.ID, af.ShortName)
		}
		if len(af.Engines) > 256 {
			return nil, fmt.Errorf("aircraft %d (%s): too many engines", af.ID, af.ShortName)
		}
		t, err := domac.ParseType(af.Type)
		if err != nil {
			return nil, fmt.Errorf("aircraft %d (%s): %w", af.ID, af.ShortName, err)
		}
		for i, e := range af.Engines {
			out = append(out, domac.Aircraft{
				ID:           domac.ID(af.ID),
				ShortName:    domac.NormalizeShortName(af.ShortName),
				Manufacturer: af.Manufacturer,
				Name:         af.Name,
				Type:         t,
				Priority:     uint8(i),
				EngineID:     domac.EngineID(e.ID),
				EngineName:   e.Name,
				Speed:        e.Speed,
				Fuel:         e.Fuel,
				CO2:          e.CO2,
				Cost:         af.Cost,
				Capacity:     af.Capacity,
				Rwy:          af.Rwy,
				CheckCost:    af.CheckCost,
				Range:        af.Range,
				Ceiling:      af.Ceiling,
				Maint:        af.Maint,
				Pilots:       af.Pilots,
				Crew:         af.Crew,
				Engineers:    af.Engineers,
				Technicians:  af.Technicians,
				Wingspan:     af.Wingspan,
				Length:       af.Length,
			})
		}
	}
	return out, nil
}

// group folds variant records back into airframes. Records must be sorted
// by (ID, Priority).
func group(records []domac.Aircraft) document {
	var doc document
	for _, a := range records {
		n := len(doc.Aircraft)
		if n == 0 || doc.Aircraft[n-1].ID != uint16(a.ID) {
			doc.Aircraft = append(doc.Aircraft, airframe{
				ID:           uint16(a.ID),
				ShortName:    a.ShortName,
				Manufacturer: a.Manufacturer,
				Name:         a.Name,
				Type:         a.Type.String(),
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
			})
			n++
		}
		af := &doc.Aircraft[n-1]
		af.Engines = append(af.Engines, engine{
			ID:    uint16(a.EngineID),
			Name:  a.EngineName,
			Speed: a.Speed,
			Fuel:  a.Fuel,
			CO2:   a.CO2,
		})
	}
	return doc
}

// sortRecords orders records by (ID, Priority), the order catalogs are built in.
func sortRecords(records []domac.Aircraft) {
	slices.SortStableFunc(records, func(a, b domac.Aircraft) int {
		if a.ID != b.ID {
			return int(a.ID) - int(b.ID)
		}
		return int(a.Priority) - int(b.Priority)
	})
}

// Hash field names for one variant record.
const (
	fieldID           = "id"
	fieldPriority     = "priority"
	fieldEngineID     = "engine_id"
	fieldEngineName   = "engine_name"
	fieldShortName    = "shortname"
	fieldManufacturer = "manufacturer"
	fieldName         = "name"
	fieldType         = "type"
	fieldSpeed        = "speed"
	fieldFuel         = "fuel"
	fieldCO2          = "co2"
	fieldCost         = "cost"
	fieldCapacity     = "capacity"
	fieldRwy          = "rwy"
	fieldCheckCost    = "check_cost"
	fieldRange        = "range"
	fieldCeiling      = "ceiling"
	fieldMaint        = "maint"
	fieldPilots       = "pilots"
	fieldCrew         = "crew"
	fieldEngineers    = "engineers"
	fieldTechnicians  = "technicians"
	fieldWingspan     = "wingspan"
	fieldLength       = "length"
)

func uitoa[T ~uint8 | ~uint16 | ~uint32](v T) string { return strconv.FormatUint(uint64(v), 10) }
func ftoa(v float64) string                          { return strconv.FormatFloat(v, 'g', -1, 64) }

// aircraftToHash converts a variant record to a map for HSET.
func aircraftToHash(a domac.Aircraft) map[string]string {
	return map[string]string{
		fieldID:           uitoa(a.ID),
		fieldPriority:     uitoa(a.Priority),
		fieldEngineID:     uitoa(a.EngineID),
		fieldEngineName:   a.EngineName,
		fieldShortName:    a.ShortName,
		fieldManufacturer: a.Manufacturer,
		fieldName:         a.Name,
		fieldType:         a.Type.String(),
		fieldSpeed:        ftoa(a.Speed),
		fieldFuel:         ftoa(a.Fuel),
		fieldCO2:          ftoa(a.CO2),
		fieldCost:         uitoa(a.Cost),
		fieldCapacity:     uitoa(a.Capacity),
		fieldRwy:          uitoa(a.Rwy),
		fieldCheckCost:    uitoa(a.CheckCost),
		fieldRange:        uitoa(a.Range),
		fieldCeiling:      uitoa(a.Ceiling),
		fieldMaint:        uitoa(a.Maint),
		fieldPilots:       uitoa(a.Pilots),
		fieldCrew:         uitoa(a.Crew),
		fieldEngineers:    uitoa(a.Engineers),
		fieldTechnicians:  uitoa(a.Technicians),
		fieldWingspan:     uitoa(a.Wingspan),
		fieldLength:       uitoa(a.Length),
	}
}

// hashReader parses hash fields and remembers the first failure.
type hashReader struct {
	m   map[string]string
	err error
}

func (r *hashReader) uint(field string, bits int) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(r.m[field], 10, bits)
	if err != nil {
		r.err = fmt.Errorf("invalid %s: %w", field, err)
	}
	return v
}

func (r *hashReader) float(field string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(r.m[field], 64)
	if err != nil {
		r.err = fmt.Errorf("invalid %s: %w", field, err)
	}
	return v
}

// aircraftFromHash hydrates a variant record from an HGETALL result map.
func aircraftFromHash(m map[string]string) (domac.Aircraft, error) {
	t, err := domac.ParseType(m[fieldType])
	if err != nil {
		return domac.Aircraft{}, err
	}
	r := &hashReader{m: m}
	a := domac.Aircraft{
		ID:           domac.ID(r.uint(fieldID, 16)),
		Priority:     uint8(r.uint(fieldPriority, 8)),
		EngineID:     domac.EngineID(r.uint(fieldEngineID, 16)),
		EngineName:   m[fieldEngineName],
		ShortName:    domac.NormalizeShortName(m[fieldShortName]),
		Manufacturer: m[fieldManufacturer],
		Name:         m[fieldName],
		Type:         t,
		Speed:        r.float(fieldSpeed),
		Fuel:         r.float(fieldFuel),
		CO2:          r.float(fieldCO2),
		Cost:         uint32(r.uint(fieldCost, 32)),
		Capacity:     uint32(r.uint(fieldCapacity, 32)),
		Rwy:          uint16(r.uint(fieldRwy, 16)),
		CheckCost:    uint32(r.uint(fieldCheckCost, 32)),
		Range:        uint16(r.uint(fieldRange, 16)),
		Ceiling:      uint16(r.uint(fieldCeiling, 16)),
		Maint:        uint16(r.uint(fieldMaint, 16)),
		Pilots:       uint8(r.uint(fieldPilots, 8)),
		Crew:         uint8(r.uint(fieldCrew, 8)),
		Engineers:    uint8(r.uint(fieldEngineers, 8)),
		Technicians:  uint8(r.uint(fieldTechnicians, 8)),
		Wingspan:     uint8(r.uint(fieldWingspan, 8)),
		Length:       uint8(r.uint(fieldLength, 8)),
	}
	if r.err != nil {
		return domac.Aircraft{}, r.err
	}
	return a, nil
}
