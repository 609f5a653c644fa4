package suggestion

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

// DefaultMinScore is the similarity threshold used when none is configured.
const DefaultMinScore = 0.5

// Item is one ranked suggestion.
type Item struct {
	Aircraft aircraft.Aircraft
	Score    float64
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) over
// case-folded runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

// Score rates text against both the short code and the display name of a
// and keeps the better of the two.
func Score(text string, a aircraft.Aircraft) float64 {
	return max(Similarity(text, a.ShortName), Similarity(text, a.Name))
}

// Rank scores every candidate, drops those below minScore and orders the rest
// best-first. Equal scores keep candidate order. limit <= 0 keeps everything.
func Rank(text string, candidates []aircraft.Aircraft, minScore float64, limit int) []Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	items := make([]Item, 0, len(candidates))
	for _, a := range candidates {
		if s := Score(text, a); s >= minScore {
			items = append(items, Item{Aircraft: a, Score: s})
		}
	}
	slices.SortStableFunc(items, func(x, y Item) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		default:
			return 0
		}
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
