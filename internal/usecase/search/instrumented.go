package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
	"github.com/kailas-cloud/acdex/internal/logger"
	"github.com/kailas-cloud/acdex/internal/metrics"
)

// Operation labels.
const (
	opSearch  = "search"
	opSuggest = "suggest"
)

// Instrumented wraps a Searcher with logging and Prometheus metrics.
// Metrics must be registered via metrics.RegisterSearchMetrics.
type Instrumented struct {
	inner  Searcher
	logger *zap.Logger
}

// NewInstrumented wraps inner. The request-scoped logger from ctx wins over
// the fallback logger when present.
func NewInstrumented(inner Searcher, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, logger: logger}
}

// Search delegates to the inner searcher and records the outcome.
func (i *Instrumented) Search(ctx context.Context, raw string) (Result, error) {
	start := time.Now()
	res, err := i.inner.Search(ctx, raw)
	duration := time.Since(start)
	i.observe(opSearch, duration, err)

	log := logger.FromContextOr(ctx, i.logger)
	if err != nil {
		log.Debug("Search failed",
			zap.String("query", raw),
			zap.String("outcome", Outcome(err)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Result{}, err
	}

	log.Debug("Search resolved",
		zap.String("query", raw),
		zap.String("matched_by", res.MatchedBy.String()),
		zap.Uint16("id", uint16(res.Base.ID)),
		zap.Uint8("engine", res.Base.Priority),
		zap.String("modifiers", res.Clause.Mods.String()),
		zap.Duration("duration", duration),
	)
	return res, nil
}

// Suggest delegates to the inner searcher and records the outcome and result size.
func (i *Instrumented) Suggest(ctx context.Context, raw string) ([]suggestion.Item, error) {
	start := time.Now()
	items, err := i.inner.Suggest(ctx, raw)
	duration := time.Since(start)
	i.observe(opSuggest, duration, err)
	metrics.SuggestItems.Observe(float64(len(items)))

	log := logger.FromContextOr(ctx, i.logger)
	if err != nil {
		log.Debug("Suggest failed",
			zap.String("query", raw),
			zap.String("outcome", Outcome(err)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	fields := []zap.Field{
		zap.String("query", raw),
		zap.Int("items", len(items)),
		zap.Duration("duration", duration),
	}
	if len(items) > 0 {
		fields = append(fields,
			zap.String("top", items[0].Aircraft.ShortName),
			zap.Float64("top_score", items[0].Score),
		)
	}
	log.Debug("Suggest ranked", fields...)
	return items, nil
}

func (i *Instrumented) observe(op string, d time.Duration, err error) {
	metrics.SearchRequestsTotal.WithLabelValues(op, Outcome(err)).Inc()
	metrics.SearchDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Outcome maps an engine error to a stable low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, domain.ErrInvalidModifier):
		return "invalid_modifier"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidEngineVariant):
		return "invalid_engine_variant"
	case errors.Is(err, domain.ErrNoSuggestion):
		return "no_suggestion"
	default:
		return "error"
	}
}
