package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrTenantNotFound          = errors.New("tenant not found")
	ErrServiceNotFound         = errors.New("service not found")
	ErrProfessionalNotFound    = errors.New("professional not found")
	ErrSlotTaken               = errors.New("slot_taken")
	ErrNotFound                = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
