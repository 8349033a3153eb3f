package messaging

import "errors"

var (
	ErrMessageNotFound = errors.New("message_not_found")
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrUnknownProvider = errors.New("unsupported messaging provider")
)
