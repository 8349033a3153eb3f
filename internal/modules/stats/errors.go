package stats

import "errors"

var (
	ErrValidation     = errors.New("validation_error")
	ErrTenantNotFound = errors.New("tenant_not_found")
)
