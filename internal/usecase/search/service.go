package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/modifier"
	"github.com/kailas-cloud/acdex/internal/domain/search/query"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
)

// Result is a resolved query.
type Result struct {
	// Base is the selected engine variant as stored in the catalog.
	Base aircraft.Aircraft
	// Aircraft is Base with the modifier flags applied.
	Aircraft aircraft.Aircraft
	// MatchedBy is the index that produced the hit.
	MatchedBy query.Kind
	Clause    modifier.Clause
}

// Service resolves aircraft queries against a catalog. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	catalog  Catalog
	defaults []aircraft.Aircraft
	minScore float64
	limit    int
}

// New creates a search service over an immutable catalog.
func New(cat Catalog) *Service {
	return &Service{
		catalog:  cat,
		defaults: cat.Defaults(),
		minScore: suggestion.DefaultMinScore,
	}
}

// WithSuggest configures the similarity threshold and result limit used by
// Suggest. A non-positive minScore keeps the default; limit 0 means no limit.
func (s *Service) WithSuggest(minScore float64, limit int) *Service {
	if minScore > 0 {
		s.minScore = minScore
	}
	if limit >= 0 {
		s.limit = limit
	}
	return s
}

// Search parses raw, looks the selector up, substitutes the requested engine
// variant and applies modifier flags. It never falls back to fuzzy matching.
func (s *Service) Search(_ context.Context, raw string) (Result, error) {
	q, err := query.Parse(raw)
	if err != nil {
		return Result{}, err
	}

	base, matched, err := s.lookup(q)
	if err != nil {
		return Result{}, err
	}

	if q.Clause.Engine != 0 {
		variant, ok := s.catalog.Variant(base.ID, q.Clause.Engine)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s has no engine %d", domain.ErrInvalidEngineVariant, base.ShortName, q.Clause.Engine)
		}
		base = variant
	}

	return Result{
		Base:      base,
		Aircraft:  modifier.Apply(base, q.Clause),
		MatchedBy: matched,
		Clause:    q.Clause,
	}, nil
}

func (s *Service) lookup(q query.Query) (aircraft.Aircraft, query.Kind, error) {
	switch q.Kind {
	case query.ByID:
		a, err := s.byID(q.Selector)
		return a, query.ByID, err
	case query.ByShortName:
		if a, ok := s.catalog.ByShortName(q.Selector); ok {
			return a, query.ByShortName, nil
		}
	case query.ByName:
		if a, ok := s.catalog.ByName(q.Selector); ok {
			return a, query.ByName, nil
		}
	default:
		if query.IsDigits(q.Selector) {
			a, err := s.byID(q.Selector)
			return a, query.ByID, err
		}
		if a, ok := s.catalog.ByShortName(q.Selector); ok {
			return a, query.ByShortName, nil
		}
		if a, ok := s.catalog.ByName(q.Selector); ok {
			return a, query.ByName, nil
		}
	}
	return aircraft.Aircraft{}, q.Kind, fmt.Errorf("%w: %s %q", domain.ErrNotFound, q.Kind, q.Selector)
}

func (s *Service) byID(token string) (aircraft.Aircraft, error) {
	v, err := strconv.ParseUint(token, 10, 16)
	if err != nil {
		return aircraft.Aircraft{}, domain.NewInvalidID(token, err)
	}
	a, ok := s.catalog.Variant(aircraft.ID(v), 0)
	if !ok {
		return aircraft.Aircraft{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, v)
	}
	return a, nil
}

// Suggest ranks default-variant records by textual similarity to the selector
// in raw, ignoring any prefix or modifier clause. Prefixes do not restrict
// which field is compared.
func (s *Service) Suggest(_ context.Context, raw string) ([]suggestion.Item, error) {
	text := query.SuggestText(raw)
	items := suggestion.Rank(text, s.defaults, s.minScore, s.limit)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w for %q", domain.ErrNoSuggestion, text)
	}
	return items, nil
}
