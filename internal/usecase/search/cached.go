package search

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/acdex/internal/domain/search/query"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
)

type suggestEntry struct {
	items []suggestion.Item
	err   error
}

// Cached memoizes Suggest results by normalized selector text. Ranking is
// deterministic over an immutable catalog, so entries never go stale; both
// hits and NoSuggestion outcomes are kept. Search passes straight through.
type Cached struct {
	inner      Searcher
	cache      *lru.Cache[string, suggestEntry]
	cacheTotal *prometheus.CounterVec
}

// NewCached wraps inner with an LRU of the given size.
// cacheTotal is a counter vec with label "result" ("hit"/"miss") and may be nil.
func NewCached(inner Searcher, size int, cacheTotal *prometheus.CounterVec) (*Cached, error) {
	c, err := lru.New[string, suggestEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create suggest cache: %w", err)
	}
	return &Cached{inner: inner, cache: c, cacheTotal: cacheTotal}, nil
}

// Search delegates to the inner searcher.
func (c *Cached) Search(ctx context.Context, raw string) (Result, error) {
	return c.inner.Search(ctx, raw)
}

// Suggest returns a cached ranking or computes and stores one.
func (c *Cached) Suggest(ctx context.Context, raw string) ([]suggestion.Item, error) {
	key := strings.ToLower(query.SuggestText(raw))
	if e, ok := c.cache.Get(key); ok {
		c.inc("hit")
		return cloneItems(e.items), e.err
	}
	c.inc("miss")

	items, err := c.inner.Suggest(ctx, raw)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	c.cache.Add(key, suggestEntry{items: cloneItems(items), err: err})
	return items, err
}

// Len returns the number of cached entries.
func (c *Cached) Len() int { return c.cache.Len() }

func (c *Cached) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cloneItems(items []suggestion.Item) []suggestion.Item {
	if items == nil {
		return nil
	}
	return append([]suggestion.Item(nil), items...)
}
