// Package catalog is the immutable in-memory aircraft store with its three
// lookup indices. A Catalog is built once and only read afterwards, so it is
// safe for concurrent use without locking.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

type variantKey struct {
	id       aircraft.ID
	priority uint8
}

// Catalog holds aircraft records and position indices into them.
type Catalog struct {
	records   []aircraft.Aircraft
	byVariant map[variantKey]int
	byShort   map[string]int
	byName    map[string]int
}

// Stats reports row and index key counts.
type Stats struct {
	Records    int `json:"records"`
	Variants   int `json:"variants"`
	ShortNames int `json:"short_names"`
	Names      int `json:"names"`
}

// New copies records and builds the indices. Records are expected to be
// valid; the only check is that no (ID, Priority) pair repeats.
// Short code and name indices point at the default variant; if two default
// variants share a key the first one wins.
func New(records []aircraft.Aircraft) (*Catalog, error) {
	c := &Catalog{
		records:   append([]aircraft.Aircraft(nil), records...),
		byVariant: make(map[variantKey]int, len(records)),
		byShort:   make(map[string]int),
		byName:    make(map[string]int),
	}
	for i, a := range c.records {
		k := variantKey{id: a.ID, priority: a.Priority}
		if prev, ok := c.byVariant[k]; ok {
			return nil, fmt.Errorf("duplicate aircraft id=%d priority=%d at rows %d and %d", a.ID, a.Priority, prev, i)
		}
		c.byVariant[k] = i

		if !a.IsDefault() {
			continue
		}
		if s := aircraft.NormalizeShortName(a.ShortName); s != "" {
			if _, ok := c.byShort[s]; !ok {
				c.byShort[s] = i
			}
		}
		if n := aircraft.NormalizeName(a.Name); n != "" {
			if _, ok := c.byName[n]; !ok {
				c.byName[n] = i
			}
		}
	}
	return c, nil
}

// MustNew is New that panics on error. Intended for fixed datasets.
func MustNew(records []aircraft.Aircraft) *Catalog {
	c, err := New(records)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Stats returns row and index sizes.
func (c *Catalog) Stats() Stats {
	return Stats{
		Records:    len(c.records),
		Variants:   len(c.byVariant),
		ShortNames: len(c.byShort),
		Names:      len(c.byName),
	}
}

// Variant returns the record for an airframe and engine index.
func (c *Catalog) Variant(id aircraft.ID, priority uint8) (aircraft.Aircraft, bool) {
	i, ok := c.byVariant[variantKey{id: id, priority: priority}]
	if !ok {
		return aircraft.Aircraft{}, false
	}
	return c.records[i], true
}

// ByID returns the default variant of an airframe.
func (c *Catalog) ByID(id aircraft.ID) (aircraft.Aircraft, bool) {
	return c.Variant(id, 0)
}

// ByShortName returns the default variant with the given short code (case-insensitive).
func (c *Catalog) ByShortName(s string) (aircraft.Aircraft, bool) {
	return c.lookup(c.byShort, aircraft.NormalizeShortName(s))
}

// ByName returns the default variant with the given display name (case-insensitive).
func (c *Catalog) ByName(s string) (aircraft.Aircraft, bool) {
	return c.lookup(c.byName, aircraft.NormalizeName(s))
}

func (c *Catalog) lookup(idx map[string]int, key string) (aircraft.Aircraft, bool) {
	i, ok := idx[key]
	if !ok {
		return aircraft.Aircraft{}, false
	}
	return c.records[i], true
}

// All returns a copy of every record in catalog order.
func (c *Catalog) All() []aircraft.Aircraft {
	return append([]aircraft.Aircraft(nil), c.records...)
}

// Defaults returns the default variant of each airframe in catalog order.
func (c *Catalog) Defaults() []aircraft.Aircraft {
	out := make([]aircraft.Aircraft, 0, len(c.records))
	for _, a := range c.records {
		if a.IsDefault() {
			out = append(out, a)
		}
	}
	return out
}

// Variants returns every engine variant of an airframe ordered by priority.
func (c *Catalog) Variants(id aircraft.ID) []aircraft.Aircraft {
	var out []aircraft.Aircraft
	for p := 0; p <= 255; p++ {
		a, ok := c.Variant(id, uint8(p))
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out
}
