package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation_error")
	ErrTenantNotFound = errors.New("tenant_not_found")
)

// FieldErrors maps field name to the failed validator tag. It unwraps to
// ErrValidation so callers can match either the sentinel or the details.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%v: %v", ErrValidation, map[string]string(e))
}

func (e FieldErrors) Unwrap() error { return ErrValidation }
