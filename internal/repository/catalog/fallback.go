package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/domain"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
)

// NamedSource is a catalog source that reports its name.
type NamedSource interface {
	Name() string
	Items(ctx context.Context) ([]item.Item, error)
}

// Fallback serves the primary source and switches to the local one when the
// primary fails.
type Fallback struct {
	primary NamedSource
	local   NamedSource
	logger  *zap.Logger
}

// NewFallback creates a fallback chain.
func NewFallback(primary, local NamedSource, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{primary: primary, local: local, logger: logger}
}

// Name identifies the source in logs and metrics.
func (f *Fallback) Name() string {
	return f.primary.Name() + "+" + f.local.Name()
}

// Items returns the primary's items, or the local ones if the primary errors.
func (f *Fallback) Items(ctx context.Context) ([]item.Item, error) {
	items, err := f.primary.Items(ctx)
	if err == nil {
		return items, nil
	}

	f.logger.Warn("Primary catalog unavailable, using fallback",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.local.Name()),
		zap.Error(err),
	)
	metrics.CatalogFallbacksTotal.WithLabelValues(f.primary.Name()).Inc()

	items, localErr := f.local.Items(ctx)
	if localErr != nil {
		return nil, fmt.Errorf("%w: primary: %w; fallback: %w", domain.ErrSourceUnavailable, err, localErr)
	}
	return items, nil
}
