package catalog

import (
	"context"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// Memory serves a fixed slice of items.
type Memory struct {
	items []item.Item
}

// NewMemory creates a source over items. The slice is copied.
func NewMemory(items []item.Item) *Memory {
	return &Memory{items: append([]item.Item(nil), items...)}
}

// Name identifies the source in logs and metrics.
func (m *Memory) Name() string { return "memory" }

// Items returns the fixed catalog.
func (m *Memory) Items(_ context.Context) ([]item.Item, error) {
	return m.items, nil
}
