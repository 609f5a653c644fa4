package search

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
)

func newCacheCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_suggest_cache_total"}, []string{"result"})
}

func TestCached_SuggestHit(t *testing.T) {
	inner := &mockSearcher{items: []suggestion.Item{{Aircraft: aircraft.Aircraft{ShortName: "b744"}, Score: 0.8}}}
	counter := newCacheCounter()
	c, err := NewCached(inner, 16, counter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, raw := range []string{"b7440", "B7440", "shortname:b7440[sf]"} {
		items, err := c.Suggest(context.Background(), raw)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", raw, err)
		}
		if len(items) != 1 || items[0].Aircraft.ShortName != "b744" {
			t.Errorf("Suggest(%q) = %v", raw, items)
		}
	}
	if inner.suggestCalls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.suggestCalls)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCached_ReturnsCopies(t *testing.T) {
	inner := &mockSearcher{items: []suggestion.Item{{Score: 0.9}}}
	c, _ := NewCached(inner, 4, nil)

	first, _ := c.Suggest(context.Background(), "x")
	first[0].Score = 0
	second, _ := c.Suggest(context.Background(), "x")
	if second[0].Score != 0.9 {
		t.Error("cached items must not alias returned slices")
	}
}

func TestCached_KeepsNoSuggestion(t *testing.T) {
	inner := &mockSearcher{err: domain.ErrNoSuggestion}
	c, _ := NewCached(inner, 4, nil)

	for range 3 {
		if _, err := c.Suggest(context.Background(), "zzzz"); !errors.Is(err, domain.ErrNoSuggestion) {
			t.Fatalf("err = %v", err)
		}
	}
	if inner.suggestCalls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.suggestCalls)
	}
}

func TestCached_SkipsCancelled(t *testing.T) {
	inner := &mockSearcher{err: context.Canceled}
	c, _ := NewCached(inner, 4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Suggest(ctx, "b744"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if c.Len() != 0 {
		t.Error("cancelled calls must not be cached")
	}
}

func TestCached_SearchPassesThrough(t *testing.T) {
	inner := &mockSearcher{result: Result{Base: aircraft.Aircraft{ID: 7}}}
	c, _ := NewCached(inner, 4, nil)

	for range 2 {
		res, err := c.Search(context.Background(), "id:7")
		if err != nil || res.Base.ID != 7 {
			t.Fatalf("Search = %+v, %v", res, err)
		}
	}
	if inner.searchCalls != 2 {
		t.Errorf("inner search calls = %d, want 2", inner.searchCalls)
	}
}

func TestNewCached_InvalidSize(t *testing.T) {
	if _, err := NewCached(&mockSearcher{}, 0, nil); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestCached_OverRealService(t *testing.T) {
	c, err := NewCached(newService(t), 8, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := c.Suggest(context.Background(), "B747-4000")
	if err != nil || items[0].Aircraft.ShortName != "b744" {
		t.Fatalf("Suggest = %v, %v", items, err)
	}
}
