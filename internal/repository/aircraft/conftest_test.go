package aircraft

import (
	"context"
	"testing"

	"github.com/kailas-cloud/acdex/internal/db"
	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, keys ...string) error
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	getFn          func(ctx context.Context, key string) ([]byte, error)
	setFn          func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func newTestSource(t *testing.T) (*StoreSource, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return NewStoreSource(ms, ""), ms
}

func testRecords(t *testing.T) []domac.Aircraft {
	t.Helper()
	b744 := domac.Aircraft{
		ID: 1, ShortName: "b744", Manufacturer: "Boeing", Name: "B747-400", Type: domac.Pax,
		Cost: 234000000, Capacity: 416, Rwy: 10000, CheckCost: 4800000, Range: 13450,
		Ceiling: 45100, Maint: 600, Pilots: 2, Crew: 12, Engineers: 2, Technicians: 4,
		Wingspan: 64, Length: 71,
	}
	v0, v1 := b744, b744
	v0.Priority, v0.EngineID, v0.EngineName, v0.Speed, v0.Fuel, v0.CO2 = 0, 1, "CF6-80C2B1F", 913, 21.68, 0.19
	v1.Priority, v1.EngineID, v1.EngineName, v1.Speed, v1.Fuel, v1.CO2 = 1, 2, "PW4056", 913, 21.21, 0.18
	a388 := domac.Aircraft{
		ID: 2, Priority: 0, EngineID: 3, EngineName: "Trent 970", ShortName: "a388",
		Manufacturer: "Airbus", Name: "A380-800", Type: domac.Pax, Speed: 945, Fuel: 27.1, CO2: 0.17,
		Capacity: 853, Rwy: 9800, Range: 15200,
	}
	return []domac.Aircraft{v0, v1, a388}
}
