package payment

import "fmt"

// NewProvider resolves the configured payments backend at startup. New
// gateways implement Provider and add a case here; booking logic stays
// untouched.
func NewProvider(name string, payments paymentRepo, bookings bookingReader, bookingWriter bookingStatusWriter, webhookSecret string) (Provider, error) {
	switch name {
	case ProviderMock:
		return NewMockProvider(payments, bookings, bookingWriter, webhookSecret), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
