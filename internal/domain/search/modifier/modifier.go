package modifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

// Stat multipliers.
const (
	SpeedFactor = 1.1
	FuelFactor  = 0.9
	CO2Factor   = 0.9
	FourXFactor = 4.0
)

// Modifier is a single performance adjustment flag.
type Modifier uint8

// Modifier flags.
const (
	Speed Modifier = 1 << iota
	Fuel
	CO2
	FourX
)

var all = []Modifier{Speed, Fuel, CO2, FourX}

// Letter returns the clause character selecting m.
func (m Modifier) Letter() byte {
	switch m {
	case Speed:
		return 's'
	case Fuel:
		return 'f'
	case CO2:
		return 'c'
	case FourX:
		return 'x'
	default:
		return '?'
	}
}

func (m Modifier) String() string {
	switch m {
	case Speed:
		return "speed"
	case Fuel:
		return "fuel"
	case CO2:
		return "co2"
	case FourX:
		return "fourx"
	default:
		return "unknown"
	}
}

func fromLetter(r rune) (Modifier, bool) {
	switch unicode.ToLower(r) {
	case 's':
		return Speed, true
	case 'f':
		return Fuel, true
	case 'c':
		return CO2, true
	case 'x':
		return FourX, true
	default:
		return 0, false
	}
}

// Set is a collection of modifiers. Adding a flag twice has no effect.
type Set uint8

// NewSet builds a set from individual flags.
func NewSet(mods ...Modifier) Set {
	var s Set
	for _, m := range mods {
		s = s.With(m)
	}
	return s
}

// With returns s with m added.
func (s Set) With(m Modifier) Set { return s | Set(m) }

// Has reports whether m is in s.
func (s Set) Has(m Modifier) bool { return s&Set(m) != 0 }

// IsEmpty reports whether no flag is set.
func (s Set) IsEmpty() bool { return s == 0 }

// List returns the flags in canonical order.
func (s Set) List() []Modifier {
	out := make([]Modifier, 0, len(all))
	for _, m := range all {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Names returns the flag names in canonical order.
func (s Set) Names() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, m := range list {
		out[i] = m.String()
	}
	return out
}

// String renders the flags as clause letters, e.g. "sfcx".
func (s Set) String() string {
	var b strings.Builder
	for _, m := range s.List() {
		b.WriteByte(m.Letter())
	}
	return b.String()
}

// Clause is a parsed modifier list: engine variant index plus flags.
type Clause struct {
	Engine uint8
	Mods   Set
}

// IsZero reports whether the clause selects the default variant with no flags.
func (c Clause) IsZero() bool { return c.Engine == 0 && c.Mods.IsEmpty() }

// String renders the clause in canonical bracket form, "" for the zero clause.
func (c Clause) String() string {
	if c.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteByte('[')
	if c.Engine != 0 {
		b.WriteByte('0' + c.Engine)
	}
	b.WriteString(c.Mods.String())
	b.WriteByte(']')
	return b.String()
}

// Parse reads the text between the brackets of a modifier clause.
// Commas and whitespace are ignored; at most one digit selects the engine
// variant; s, f, c and x (any case) toggle flags.
func Parse(body string) (Clause, error) {
	var (
		c         Clause
		engineSet bool
	)
	for pos, r := range body {
		switch {
		case r == ',' || unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			if engineSet {
				return Clause{}, domain.NewModifierError(body, pos, "more than one engine index")
			}
			c.Engine = uint8(r - '0')
			engineSet = true
		case r == utf8.RuneError:
			return Clause{}, domain.NewModifierError(body, pos, "invalid utf-8")
		default:
			m, ok := fromLetter(r)
			if !ok {
				return Clause{}, domain.NewModifierError(body, pos, "unexpected character "+string(r))
			}
			c.Mods = c.Mods.With(m)
		}
	}
	return c, nil
}

// Apply returns a copy of a with the clause flags applied to its stats.
// Engine substitution is done by the caller; identifiers are never touched.
func Apply(a aircraft.Aircraft, c Clause) aircraft.Aircraft {
	if c.Mods.Has(Speed) {
		a.Speed *= SpeedFactor
	}
	if c.Mods.Has(FourX) {
		a.Speed *= FourXFactor
	}
	if c.Mods.Has(Fuel) {
		a.Fuel *= FuelFactor
	}
	if c.Mods.Has(CO2) {
		a.CO2 *= CO2Factor
	}
	return a
}
