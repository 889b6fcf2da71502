package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
)

// DefaultDebounce collapses bursts of write events into one reload.
const DefaultDebounce = 200 * time.Millisecond

// JSONFile serves items decoded from a JSON file and can hot-reload it.
// Readers always see a complete snapshot; a failed reload keeps the previous one.
type JSONFile struct {
	path     string
	logger   *zap.Logger
	debounce time.Duration

	mu    sync.RWMutex
	items []item.Item
}

// NewJSONFile loads path once and returns the source.
func NewJSONFile(path string, logger *zap.Logger) (*JSONFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &JSONFile{path: filepath.Clean(path), logger: logger, debounce: DefaultDebounce}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Name identifies the source in logs and metrics.
func (f *JSONFile) Name() string { return "json" }

// Items returns the current snapshot. Callers must not modify it.
func (f *JSONFile) Items(_ context.Context) ([]item.Item, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.items, nil
}

// Reload re-reads the file and swaps the snapshot.
func (f *JSONFile) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	items, err := decodeItems(data)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it is written, created or renamed into place,
// until ctx is cancelled. The parent directory is watched so editors that
// replace the file atomically are picked up.
func (f *JSONFile) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(f.debounce, f.reloadAndLog)
			timerMu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("Catalog watcher error", zap.String("path", f.path), zap.Error(err))
		}
	}
}

func (f *JSONFile) reloadAndLog() {
	if err := f.Reload(); err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		f.logger.Error("Catalog reload failed, keeping previous snapshot",
			zap.String("path", f.path), zap.Error(err))
		return
	}
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()

	f.mu.RLock()
	n := len(f.items)
	f.mu.RUnlock()
	f.logger.Info("Catalog reloaded", zap.String("path", f.path), zap.Int("items", n))
}
