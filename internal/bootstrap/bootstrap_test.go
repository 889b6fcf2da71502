package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/config"
	"github.com/obinss/CoCreate-MVP/internal/db"
)

const catalogJSON = `[{"id":"1","title":"Oak Planks","description":"","category":"Wood",
"condition":"new","price":40,"locationName":"Berlin"}]`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o600))
	return path
}

func TestOpenStore_Memory(t *testing.T) {
	s, err := OpenStore(config.DatabaseConfig{Driver: config.DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpenStore_Badger(t *testing.T) {
	s, err := OpenStore(config.DatabaseConfig{
		Driver: config.DriverBadger,
		Path:   filepath.Join(t.TempDir(), "data"),
	}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, db.ErrKeyNotFound))
}

func TestOpenStore_Errors(t *testing.T) {
	_, err := OpenStore(config.DatabaseConfig{Driver: config.DriverRedis}, zap.NewNop())
	assert.Error(t, err)

	_, err = OpenStore(config.DatabaseConfig{Driver: "etcd"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestOpenCatalog_JSON(t *testing.T) {
	c, err := OpenCatalog(config.CatalogConfig{Source: config.SourceJSON, Path: writeCatalog(t), Watch: true}, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "json", c.Source.Name())
	assert.NotNil(t, c.Watch)
	items, err := c.Source.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOpenCatalog_Memory(t *testing.T) {
	c, err := OpenCatalog(config.CatalogConfig{Source: config.SourceMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c.Watch)
	items, err := c.Source.Items(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpenCatalog_RemoteWithFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := OpenCatalog(config.CatalogConfig{
		Source:       config.SourceRemote,
		BaseURL:      srv.URL,
		TimeoutSec:   2,
		FallbackPath: writeCatalog(t),
	}, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "remote+json", c.Source.Name())
	items, err := c.Source.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Oak Planks", items[0].Title)
}

func TestOpenCatalog_Errors(t *testing.T) {
	_, err := OpenCatalog(config.CatalogConfig{Source: config.SourceJSON, Path: "/nonexistent/items.json"}, zap.NewNop())
	assert.Error(t, err)

	_, err = OpenCatalog(config.CatalogConfig{Source: "ftp"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown catalog source")

	_, err = OpenCatalog(config.CatalogConfig{Source: config.SourceMemory, FallbackPath: "/nonexistent.json"}, zap.NewNop())
	assert.ErrorContains(t, err, "fallback catalog")
}

func TestOpenCatalog_Snapshot(t *testing.T) {
	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	store, err := OpenStore(config.DatabaseConfig{Driver: config.DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	cfg := config.CatalogConfig{Source: config.SourceRemote, BaseURL: srv.URL, TimeoutSec: 2, Snapshot: true}
	c, err := OpenCatalog(cfg, zap.NewNop(), WithSnapshotStore(store, "test:"))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Source.Items(ctx)
	require.NoError(t, err)

	down.Store(true)
	items, err := c.Source.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	raw, err := store.Get(ctx, "test:catalog_snapshot:remote")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Oak Planks")
}
