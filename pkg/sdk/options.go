package acdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	records     []Aircraft
	catalogFile string

	addrs     []string
	password  string
	keyPrefix string

	minScore  float64
	limit     int
	cacheSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// sources counts how many catalog sources are configured.
func (c *clientConfig) sources() int {
	n := 0
	if c.records != nil {
		n++
	}
	if c.catalogFile != "" {
		n++
	}
	if len(c.addrs) > 0 {
		n++
	}
	return n
}

// WithCatalog serves the given records instead of the shipped dataset.
// Records are copied; (ID, Priority) pairs must be unique.
func WithCatalog(records []Aircraft) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = append(make([]Aircraft, 0, len(records)), records...)
	})
}

// WithCatalogFile loads the catalog from a .yaml, .json, .msgpack or
// .msgpack.zst file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogFile = path
	})
}

// WithRedis loads the catalog from Redis hashes written by `acdex seed`.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the Redis key prefix. Default: "acdex:aircraft:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMinScore sets the similarity threshold for Suggest. Default: 0.5.
func WithMinScore(score float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minScore = score
	})
}

// WithSuggestLimit caps the number of suggestions. 0 (default) returns every
// candidate above the threshold.
func WithSuggestLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.limit = n
	})
}

// WithSuggestCache memoizes up to size Suggest results. Disabled by default.
func WithSuggestCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
