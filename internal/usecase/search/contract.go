package search

import (
	"context"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// Source supplies the catalog to search.
type Source interface {
	Name() string
	Items(ctx context.Context) ([]item.Item, error)
}

// History records and lists recent queries.
type History interface {
	Save(ctx context.Context, query string) error
	List(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
