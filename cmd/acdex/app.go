package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/catalog"
	"github.com/kailas-cloud/acdex/internal/config"
	"github.com/kailas-cloud/acdex/internal/dataset"
	"github.com/kailas-cloud/acdex/internal/db"
	dbRedis "github.com/kailas-cloud/acdex/internal/db/redis"
	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
	logpkg "github.com/kailas-cloud/acdex/internal/logger"
	aircraftrepo "github.com/kailas-cloud/acdex/internal/repository/aircraft"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

// app is the loaded configuration and its long-lived resources.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	store   db.Store // nil unless a command needed Redis
	catalog *catalog.Catalog
}

// setup loads config and builds the logger.
func (o *rootOptions) setup() (*app, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(o.env)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.catalog != "" {
		cfg.Catalog.Source = config.SourceFile
		cfg.Catalog.Path = o.catalog
	}

	logger, err := logpkg.NewLogger(o.env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return &app{env: o.env, cfg: cfg, logger: logger}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

// withLogger returns ctx carrying the app logger.
func (a *app) withLogger(ctx context.Context) context.Context {
	return logpkg.ContextWithLogger(ctx, a.logger)
}

// openStore connects to Redis once and waits for readiness.
func (a *app) openStore(ctx context.Context) (db.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if len(a.cfg.Database.Addrs) == 0 {
		return nil, fmt.Errorf("database.addrs is not configured")
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Database.Addrs,
		Password: a.cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	a.logger.Info("Connected to database", zap.Strings("db_addrs", a.cfg.Database.Addrs))
	a.store = store
	return store, nil
}

// loadCatalog builds the catalog from the configured source.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	ctx = a.withLogger(ctx)

	var (
		cat *catalog.Catalog
		err error
	)
	switch a.cfg.Catalog.Source {
	case config.SourceFile:
		cat, err = buildCatalog(aircraftrepo.NewFileSource(a.cfg.Catalog.Path).Load(ctx))
	case config.SourceRedis:
		store, serr := a.openStore(ctx)
		if serr != nil {
			return nil, serr
		}
		cat, err = buildCatalog(aircraftrepo.NewStoreSource(store, a.cfg.Catalog.KeyPrefix).Load(ctx))
	default:
		cat, err = dataset.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", a.cfg.Catalog.Source, err)
	}

	stats := cat.Stats()
	a.logger.Info("Catalog loaded",
		zap.String("source", a.cfg.Catalog.Source),
		zap.Int("records", stats.Records),
		zap.Int("short_names", stats.ShortNames),
		zap.Int("names", stats.Names),
	)
	a.catalog = cat
	return cat, nil
}

func buildCatalog(records []domac.Aircraft, err error) (*catalog.Catalog, error) {
	if err != nil {
		return nil, err
	}
	return catalog.New(records)
}

// searcher builds the engine with configured suggestion settings and, when
// cacheSize > 0, the suggestion cache.
func (a *app) searcher(cat *catalog.Catalog, cacheTotal *prometheus.CounterVec) (searchuc.Searcher, error) {
	var s searchuc.Searcher = searchuc.New(cat).WithSuggest(a.cfg.Suggest.MinScore, a.cfg.Suggest.Limit)
	if a.cfg.Suggest.CacheSize > 0 {
		cached, err := searchuc.NewCached(s, a.cfg.Suggest.CacheSize, cacheTotal)
		if err != nil {
			return nil, err
		}
		s = cached
	}
	return s, nil
}
