package health

import (
	"context"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// DBPinger checks key-value store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogSource is probed by loading the catalog.
type CatalogSource interface {
	Items(ctx context.Context) ([]item.Item, error)
}
