package query

import (
	"strings"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/search/modifier"
)

// Kind is the lookup mode chosen by the selector prefix.
type Kind uint8

// Selector kinds.
const (
	Unprefixed Kind = iota
	ByID
	ByShortName
	ByName
)

// Selector prefixes.
const (
	PrefixID        = "id:"
	PrefixShortName = "shortname:"
	PrefixName      = "name:"
)

func (k Kind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByShortName:
		return "shortname"
	case ByName:
		return "name"
	default:
		return "unprefixed"
	}
}

// Query is a parsed search string.
type Query struct {
	Kind     Kind
	Selector string
	Clause   modifier.Clause
}

// Parse splits raw into a selector and an optional modifier clause.
// The clause starts at the last '[' and must run to the end of the string.
func Parse(raw string) (Query, error) {
	s := strings.TrimSpace(raw)
	head := s
	var clause modifier.Clause
	if open := strings.LastIndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Query{}, domain.NewModifierError(s[open:], len(s)-open, "unclosed modifier list")
		}
		c, err := modifier.Parse(s[open+1 : len(s)-1])
		if err != nil {
			return Query{}, err
		}
		clause = c
		head = s[:open]
	}

	kind, sel := splitPrefix(strings.TrimSpace(head))
	return Query{Kind: kind, Selector: sel, Clause: clause}, nil
}

// SuggestText extracts the selector text for fuzzy matching without
// validating the modifier clause.
func SuggestText(raw string) string {
	s := strings.TrimSpace(raw)
	if open := strings.LastIndexByte(s, '['); open >= 0 {
		s = s[:open]
	}
	_, sel := splitPrefix(strings.TrimSpace(s))
	return sel
}

func splitPrefix(s string) (Kind, string) {
	for _, p := range []struct {
		prefix string
		kind   Kind
	}{
		{PrefixID, ByID},
		{PrefixShortName, ByShortName},
		{PrefixName, ByName},
	} {
		if len(s) >= len(p.prefix) && strings.EqualFold(s[:len(p.prefix)], p.prefix) {
			return p.kind, strings.TrimSpace(s[len(p.prefix):])
		}
	}
	return Unprefixed, s
}

// IsDigits reports whether s is non-empty and only ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
