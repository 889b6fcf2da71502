package recent

import "context"

// Store persists the history list.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, queries []string) error
	Clear(ctx context.Context) error
}
