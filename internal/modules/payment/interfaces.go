package payment

import (
	"context"
	"net/http"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

const (
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
)

// WebhookEvent is the parsed, signature-verified payload of a provider
// callback.
type WebhookEvent struct {
	IntentID string `json:"intentId"`
	Event    string `json:"event"`
}

// Provider is the pluggable payments contract. Booking logic depends only on
// this interface; swapping the mock for a real gateway must not touch the
// reservation flow.
type Provider interface {
	CreateIntent(ctx context.Context, bookingID int64) (string, error)
	Confirm(ctx context.Context, intentID string) (domain.PaymentStatus, error)
	Refund(ctx context.Context, paymentID string) (domain.PaymentStatus, error)
	VerifyWebhook(header http.Header, body []byte) (WebhookEvent, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type bookingStatusWriter interface {
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
}
