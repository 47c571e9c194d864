package sales

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("invalid sale")

// ErrPersistence is returned when the storage medium cannot be read or written.
var ErrPersistence = errors.New("sales storage failure")

// ValidationError describes a rejected form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets callers test with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
