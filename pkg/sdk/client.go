package acdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/acdex/internal/catalog"
	"github.com/kailas-cloud/acdex/internal/dataset"
	"github.com/kailas-cloud/acdex/internal/db"
	dbRedis "github.com/kailas-cloud/acdex/internal/db/redis"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
	aircraftrepo "github.com/kailas-cloud/acdex/internal/repository/aircraft"
	healthuc "github.com/kailas-cloud/acdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the acdex SDK entry point. It is safe for concurrent use.
type Client struct {
	catalog   *catalog.Catalog
	store     db.Store
	searchSvc searchuc.Searcher
	healthSvc healthUseCase
	obs       *observer
}

// New builds a Client. The shipped dataset is served unless a catalog
// source option is given. The provided context bounds catalog loading.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{minScore: suggestion.DefaultMinScore}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.sources() > 1 {
		return nil, errors.New("acdex: WithCatalog, WithCatalogFile and WithRedis are mutually exclusive")
	}
	if cfg.minScore <= 0 || cfg.minScore > 1 {
		return nil, fmt.Errorf("acdex: min score must be in (0, 1], got %g", cfg.minScore)
	}
	if cfg.limit < 0 {
		return nil, fmt.Errorf("acdex: suggest limit must not be negative, got %d", cfg.limit)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	cat, err := loadCatalog(ctx, cfg, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return wireClient(cat, store, cfg, obs)
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("acdex: create redis store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("acdex: database not ready: %w", err)
	}
	return s, nil
}

func loadCatalog(ctx context.Context, cfg *clientConfig, store db.Store) (*catalog.Catalog, error) {
	var (
		records []aircraft.Aircraft
		err     error
	)
	switch {
	case cfg.records != nil:
		records = make([]aircraft.Aircraft, len(cfg.records))
		for i, a := range cfg.records {
			if records[i], err = aircraftToDomain(a); err != nil {
				return nil, fmt.Errorf("acdex: %w", err)
			}
		}
	case cfg.catalogFile != "":
		records, err = aircraftrepo.NewFileSource(cfg.catalogFile).Load(ctx)
	case store != nil:
		records, err = aircraftrepo.NewStoreSource(store, cfg.keyPrefix).Load(ctx)
	default:
		cat, err := dataset.Default()
		if err != nil {
			return nil, fmt.Errorf("acdex: shipped dataset: %w", err)
		}
		return cat, nil
	}
	if err != nil {
		return nil, fmt.Errorf("acdex: load catalog: %w", err)
	}

	cat, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("acdex: build catalog: %w", err)
	}
	return cat, nil
}

func wireClient(cat *catalog.Catalog, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	var search searchuc.Searcher = searchuc.New(cat).WithSuggest(cfg.minScore, cfg.limit)
	if cfg.cacheSize > 0 {
		cached, err := searchuc.NewCached(search, cfg.cacheSize, nil)
		if err != nil {
			return nil, fmt.Errorf("acdex: %w", err)
		}
		search = cached
	}

	// Pass a nil interface, not a typed nil *Store, when there is no database.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		catalog:   cat,
		store:     store,
		searchSvc: search,
		healthSvc: healthuc.New(cat, pinger),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search resolves a query to one engine variant with modifiers applied.
// It never falls back to fuzzy matching; call Suggest on ErrNotFound.
func (c *Client) Search(ctx context.Context, query string) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	r, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	return resultFromDomain(r), nil
}

// Suggest ranks default variants by similarity to the selector in query.
// Returns ErrNoSuggestion when nothing clears the threshold.
func (c *Client) Suggest(ctx context.Context, query string) (items []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	ranked, err := c.searchSvc.Suggest(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return suggestionsFromDomain(ranked), nil
}

// Variants returns every engine variant of an airframe ordered by priority.
func (c *Client) Variants(id uint16) []Aircraft {
	return aircraftListFromDomain(c.catalog.Variants(aircraft.ID(id)))
}

// Catalog returns a copy of every record in catalog order.
func (c *Client) Catalog() []Aircraft {
	return aircraftListFromDomain(c.catalog.All())
}

// Stats reports record and index sizes.
func (c *Client) Stats() CatalogStats {
	s := c.catalog.Stats()
	return CatalogStats{
		Records:    s.Records,
		Variants:   s.Variants,
		ShortNames: s.ShortNames,
		Names:      s.Names,
	}
}
