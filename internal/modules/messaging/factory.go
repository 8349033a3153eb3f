package messaging

import "fmt"

// NewProvider resolves the configured messaging backend at startup. A real
// WhatsApp or SMS gateway implements Provider and adds a case here.
func NewProvider(name string, messages messageRepo, contexts contextReader, loggerf func(format string, args ...any)) (Provider, error) {
	switch name {
	case ProviderMock:
		return NewMockProvider(messages, contexts, loggerf), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
