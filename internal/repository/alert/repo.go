package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/obinss/CoCreate-MVP/internal/db"
	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
)

// kv is the consumer interface for alert persistence (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo stores each scope's alerts as one JSON array under {prefix}alerts:{scope},
// in creation order.
type Repo struct {
	kv     kv
	prefix string
}

// New creates an alert repository.
func New(s kv, prefix string) *Repo {
	return &Repo{kv: s, prefix: prefix}
}

func (r *Repo) key(scope string) string {
	if scope == "" {
		scope = "global"
	}
	return r.prefix + "alerts:" + scope
}

// List returns the scope's alerts, or an empty list.
func (r *Repo) List(ctx context.Context, scope string) ([]domalert.Alert, error) {
	key := r.key(scope)
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []domalert.Alert{}, nil
		}
		return nil, fmt.Errorf("alerts GET %s: %w", key, err)
	}

	var alerts []domalert.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("alerts GET %s decode: %w", key, err)
	}
	if alerts == nil {
		alerts = []domalert.Alert{}
	}
	return alerts, nil
}

// Save replaces the scope's alerts.
func (r *Repo) Save(ctx context.Context, scope string, alerts []domalert.Alert) error {
	key := r.key(scope)
	if alerts == nil {
		alerts = []domalert.Alert{}
	}
	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("alerts encode: %w", err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("alerts SET %s: %w", key, err)
	}
	return nil
}
