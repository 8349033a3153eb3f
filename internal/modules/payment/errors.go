package payment

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrBookingAlreadyPaid = errors.New("booking_already_paid")
	ErrPaymentNotFound    = errors.New("payment_not_found")
	ErrNotRefundable      = errors.New("only_succeeded_can_refund")
	ErrInvalidSignature   = errors.New("invalid_signature")
	ErrUnknownProvider    = errors.New("unsupported payments provider")
)
