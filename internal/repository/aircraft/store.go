package aircraft

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/db"
	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/logger"
)

// DefaultKeyPrefix namespaces catalog keys in Redis.
const DefaultKeyPrefix = "acdex:aircraft:"

const saveBatchSize = 256

// ErrEmpty is returned when the store holds no catalog records.
var ErrEmpty = errors.New("catalog store is empty")

// store is the consumer interface for the Redis catalog (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// StoreSource reads and writes catalog records as Redis hashes, one hash per
// engine variant.
//
// Key layout: {prefix}{id}:{priority} per record, {prefix}count for the
// record count written by the last Save.
type StoreSource struct {
	store  store
	prefix string
}

// NewStoreSource creates a Redis-backed catalog source. An empty prefix
// selects DefaultKeyPrefix.
func NewStoreSource(s store, prefix string) *StoreSource {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &StoreSource{store: s, prefix: prefix}
}

func (s *StoreSource) recordKey(id domac.ID, priority uint8) string {
	return fmt.Sprintf("%s%d:%d", s.prefix, id, priority)
}

func (s *StoreSource) recordPattern() string { return s.prefix + "[0-9]*" }

func (s *StoreSource) countKey() string { return s.prefix + "count" }

// Load scans every record hash and fetches them in one pipelined round-trip.
func (s *StoreSource) Load(ctx context.Context) ([]domac.Aircraft, error) {
	keys, err := s.store.Scan(ctx, s.recordPattern())
	if err != nil {
		return nil, fmt.Errorf("scan aircraft: %w", err)
	}
	if len(keys) == 0 {
		return nil, ErrEmpty
	}

	maps, err := s.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi aircraft: %w", err)
	}

	records := make([]domac.Aircraft, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		a, err := aircraftFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse aircraft %s: %w", keys[i], err)
		}
		records = append(records, a)
	}

	if err := s.checkCount(ctx, len(records)); err != nil {
		return nil, err
	}

	sortRecords(records)
	logger.FromContext(ctx).Info("catalog loaded from store",
		zap.String("prefix", s.prefix),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func (s *StoreSource) checkCount(ctx context.Context, have int) error {
	raw, err := s.store.Get(ctx, s.countKey())
	if errors.Is(err, db.ErrKeyNotFound) {
		logger.FromContext(ctx).Warn("catalog count key missing, skipping completeness check",
			zap.String("key", s.countKey()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("get catalog count: %w", err)
	}
	want, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("invalid catalog count %q: %w", raw, err)
	}
	if want != have {
		return fmt.Errorf("incomplete catalog: have %d records, expected %d", have, want)
	}
	return nil
}

// Save replaces the stored catalog with records: it writes every record hash,
// deletes hashes no longer present and updates the count key.
func (s *StoreSource) Save(ctx context.Context, records []domac.Aircraft) error {
	existing, err := s.store.Scan(ctx, s.recordPattern())
	if err != nil {
		return fmt.Errorf("scan aircraft: %w", err)
	}

	keep := make(map[string]struct{}, len(records))
	items := make([]db.HashSetItem, 0, len(records))
	for _, a := range records {
		key := s.recordKey(a.ID, a.Priority)
		keep[key] = struct{}{}
		items = append(items, db.HashSetItem{Key: key, Fields: aircraftToHash(a)})
	}

	for start := 0; start < len(items); start += saveBatchSize {
		end := min(start+saveBatchSize, len(items))
		if err := s.store.HSetMulti(ctx, items[start:end]); err != nil {
			return fmt.Errorf("hset aircraft batch %d-%d: %w", start, end, err)
		}
	}

	var stale []string
	for _, key := range existing {
		if _, ok := keep[key]; !ok {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		if err := s.store.Del(ctx, stale...); err != nil {
			return fmt.Errorf("del stale aircraft: %w", err)
		}
	}

	if err := s.store.Set(ctx, s.countKey(), []byte(strconv.Itoa(len(items)))); err != nil {
		return fmt.Errorf("set catalog count: %w", err)
	}

	logger.FromContext(ctx).Info("catalog saved to store",
		zap.String("prefix", s.prefix),
		zap.Int("records", len(items)),
		zap.Int("removed", len(stale)),
	)
	return nil
}
