package alert

import (
	"context"

	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// Repository persists alerts per scope.
type Repository interface {
	List(ctx context.Context, scope string) ([]domalert.Alert, error)
	Save(ctx context.Context, scope string, alerts []domalert.Alert) error
}

// Source supplies the listings alerts are checked against.
type Source interface {
	Name() string
	Items(ctx context.Context) ([]item.Item, error)
}
