package snapshot

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/db"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

type mockSource struct {
	items []item.Item
	err   error
	calls int
}

func (m *mockSource) Name() string { return "remote" }

func (m *mockSource) Items(_ context.Context) ([]item.Item, error) {
	m.calls++
	return m.items, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte) error
	data     map[string][]byte
	setCalls int
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.setCalls++
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	return nil
}

func newTestSource(t *testing.T, in *mockSource) (*Source, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_snapshot_total"}, []string{"result"})
	return New(in, ms, "test:", counter, zap.NewNop()), ms, counter
}
