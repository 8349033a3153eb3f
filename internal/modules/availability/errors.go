package availability

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrServiceNotFound = errors.New("service not found")
)
