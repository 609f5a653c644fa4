package search

import (
	"context"

	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
)

// Catalog is the read-only aircraft store the resolver looks records up in.
type Catalog interface {
	Variant(id aircraft.ID, priority uint8) (aircraft.Aircraft, bool)
	ByShortName(s string) (aircraft.Aircraft, bool)
	ByName(s string) (aircraft.Aircraft, bool)
	Defaults() []aircraft.Aircraft
}

// Searcher resolves queries and ranks suggestions. Service implements it and
// the decorators in this package wrap it.
type Searcher interface {
	Search(ctx context.Context, raw string) (Result, error)
	Suggest(ctx context.Context, raw string) ([]suggestion.Item, error)
}
