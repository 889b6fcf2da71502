package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidItem signals a catalog record that fails boundary validation.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidRequest signals a malformed search or alert request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSourceUnavailable signals that no catalog source could supply items.
	ErrSourceUnavailable = errors.New("catalog source unavailable")
)

// ItemError wraps ErrInvalidItem with the position and id of the offending record.
type ItemError struct {
	Index int
	ID    string
	Err   error
}

func (e *ItemError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s at index %d (id %q): %v", ErrInvalidItem.Error(), e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("%s at index %d: %v", ErrInvalidItem.Error(), e.Index, e.Err)
}

func (e *ItemError) Unwrap() []error { return []error{ErrInvalidItem, e.Err} }

// NewItemError creates an invalid item error for the record at index.
func NewItemError(index int, id string, err error) error {
	return &ItemError{Index: index, ID: id, Err: err}
}
