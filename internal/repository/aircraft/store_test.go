package aircraft

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/acdex/internal/db"
	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

func hashesFor(t *testing.T) ([]string, []map[string]string) {
	t.Helper()
	recs := testRecords(t)
	// Scan order is arbitrary; hand records back reversed.
	keys := []string{"acdex:aircraft:2:0", "acdex:aircraft:1:1", "acdex:aircraft:1:0"}
	maps := []map[string]string{aircraftToHash(recs[2]), aircraftToHash(recs[1]), aircraftToHash(recs[0])}
	return keys, maps
}

// --- Load ---

func TestLoad_HappyPath(t *testing.T) {
	src, ms := newTestSource(t)
	keys, maps := hashesFor(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "acdex:aircraft:[0-9]*" {
			t.Errorf("unexpected pattern: %s", pattern)
		}
		return keys, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, got []string) ([]map[string]string, error) {
		if !slices.Equal(got, keys) {
			t.Errorf("unexpected keys: %v", got)
		}
		return maps, nil
	}
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "acdex:aircraft:count" {
			t.Errorf("unexpected count key: %s", key)
		}
		return []byte("3"), nil
	}

	recs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testRecords(t)
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, recs[i], want[i])
		}
	}
}

func TestLoad_Empty(t *testing.T) {
	src, _ := newTestSource(t)
	if _, err := src.Load(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoad_SkipsVanishedKeys(t *testing.T) {
	src, ms := newTestSource(t)
	keys, maps := hashesFor(t)
	maps[0] = map[string]string{}

	ms.scanFn = func(context.Context, string) ([]string, error) { return keys, nil }
	ms.hgetAllMultiFn = func(context.Context, []string) ([]map[string]string, error) { return maps, nil }

	recs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len = %d, want 2", len(recs))
	}
}

func TestLoad_CountMismatch(t *testing.T) {
	src, ms := newTestSource(t)
	keys, maps := hashesFor(t)

	ms.scanFn = func(context.Context, string) ([]string, error) { return keys, nil }
	ms.hgetAllMultiFn = func(context.Context, []string) ([]map[string]string, error) { return maps, nil }
	ms.getFn = func(context.Context, string) ([]byte, error) { return []byte("5"), nil }

	_, err := src.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "incomplete catalog") {
		t.Fatalf("expected incomplete catalog error, got %v", err)
	}
}

func TestLoad_BadHash(t *testing.T) {
	src, ms := newTestSource(t)
	keys, maps := hashesFor(t)
	maps[1][fieldSpeed] = "fast"

	ms.scanFn = func(context.Context, string) ([]string, error) { return keys, nil }
	ms.hgetAllMultiFn = func(context.Context, []string) ([]map[string]string, error) { return maps, nil }

	_, err := src.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), keys[1]) {
		t.Fatalf("expected error naming %s, got %v", keys[1], err)
	}
}

func TestLoad_StoreErrors(t *testing.T) {
	boom := errors.New("connection lost")

	src, ms := newTestSource(t)
	ms.scanFn = func(context.Context, string) ([]string, error) { return nil, boom }
	if _, err := src.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("scan: expected wrapped error, got %v", err)
	}

	src, ms = newTestSource(t)
	ms.scanFn = func(context.Context, string) ([]string, error) { return []string{"k"}, nil }
	ms.hgetAllMultiFn = func(context.Context, []string) ([]map[string]string, error) { return nil, boom }
	if _, err := src.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("hgetall: expected wrapped error, got %v", err)
	}
}

// --- Save ---

func TestSave_WritesRecordsAndRemovesStale(t *testing.T) {
	src, ms := newTestSource(t)

	var written []db.HashSetItem
	var deleted []string
	var count string

	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{"acdex:aircraft:1:0", "acdex:aircraft:9:0"}, nil
	}
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		written = append(written, items...)
		return nil
	}
	ms.delFn = func(_ context.Context, keys ...string) error {
		deleted = append(deleted, keys...)
		return nil
	}
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		if key != "acdex:aircraft:count" {
			t.Errorf("unexpected key: %s", key)
		}
		count = string(value)
		return nil
	}

	if err := src.Save(context.Background(), testRecords(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("written = %d, want 3", len(written))
	}
	if written[1].Key != "acdex:aircraft:1:1" || written[1].Fields[fieldEngineName] != "PW4056" {
		t.Errorf("unexpected item: %+v", written[1])
	}
	if !slices.Equal(deleted, []string{"acdex:aircraft:9:0"}) {
		t.Errorf("deleted = %v", deleted)
	}
	if count != "3" {
		t.Errorf("count = %q, want 3", count)
	}
}

func TestSave_HSetError(t *testing.T) {
	src, ms := newTestSource(t)
	boom := errors.New("OOM")
	setCalled := false
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error { return boom }
	ms.setFn = func(context.Context, string, []byte) error {
		setCalled = true
		return nil
	}

	if err := src.Save(context.Background(), testRecords(t)); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if setCalled {
		t.Error("count must not be written after a failed batch")
	}
}

func TestSave_Batches(t *testing.T) {
	src, ms := newTestSource(t)
	base := testRecords(t)[0]

	calls := 0
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		calls++
		if len(items) > saveBatchSize {
			t.Errorf("batch of %d exceeds %d", len(items), saveBatchSize)
		}
		return nil
	}

	input := make([]domac.Aircraft, 0, saveBatchSize+10)
	for i := 0; i < saveBatchSize+10; i++ {
		a := base
		a.ID += domac.ID(i)
		input = append(input, a)
	}
	if err := src.Save(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("HSetMulti calls = %d, want 2", calls)
	}
}

func TestNewStoreSource_CustomPrefix(t *testing.T) {
	src := NewStoreSource(&mockStore{}, "test:ac:")
	if src.recordKey(4, 2) != "test:ac:4:2" || src.countKey() != "test:ac:count" {
		t.Errorf("unexpected keys: %s %s", src.recordKey(4, 2), src.countKey())
	}
}
