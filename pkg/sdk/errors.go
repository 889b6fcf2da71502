package cocreate

import "github.com/obinss/CoCreate-MVP/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidItem       = domain.ErrInvalidItem
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrSourceUnavailable = domain.ErrSourceUnavailable
)
