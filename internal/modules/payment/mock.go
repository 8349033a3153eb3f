package payment

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

const ProviderMock = "mock"

// MockProvider simulates a payment gateway against the local payments table.
// Latencies are bounded random delays standing in for network round trips;
// they respect context cancellation.
type MockProvider struct {
	payments      paymentRepo
	bookings      bookingReader
	bookingWriter bookingStatusWriter
	webhookSecret string

	// sleep is swappable so tests run without the simulated latency.
	sleep func(ctx context.Context, min, max time.Duration) error
}

func NewMockProvider(payments paymentRepo, bookings bookingReader, bookingWriter bookingStatusWriter, webhookSecret string) *MockProvider {
	return &MockProvider{
		payments:      payments,
		bookings:      bookings,
		bookingWriter: bookingWriter,
		webhookSecret: webhookSecret,
		sleep:         randomSleep,
	}
}

func randomSleep(ctx context.Context, min, max time.Duration) error {
	d := min + time.Duration(rand.Int63n(int64(max-min)+1))
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreateIntent opens a payment attempt for a booking. Fails when the booking
// does not exist or is already paid; no row is written in either case.
func (p *MockProvider) CreateIntent(ctx context.Context, bookingID int64) (string, error) {
	b, err := p.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrBookingNotFound
		}
		return "", err
	}
	if b.Status == domain.BookingPaid {
		return "", ErrBookingAlreadyPaid
	}

	intentID := uuid.NewString()
	err = p.payments.Create(ctx, &domain.Payment{
		ID:          intentID,
		TenantID:    b.TenantID,
		BookingID:   b.ID,
		AmountCents: b.PriceCents,
		Provider:    ProviderMock,
		Status:      domain.PaymentRequiresPayment,
	})
	if err != nil {
		return "", err
	}
	return intentID, nil
}

// Confirm settles an intent after simulated processing latency and cascades
// the owning booking to paid. Idempotent: confirming an intent that already
// succeeded returns succeeded without touching anything.
func (p *MockProvider) Confirm(ctx context.Context, intentID string) (domain.PaymentStatus, error) {
	if err := p.sleep(ctx, 1*time.Second, 3*time.Second); err != nil {
		return "", err
	}

	pay, err := p.payments.GetByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPaymentNotFound
		}
		return "", err
	}
	if pay.Status == domain.PaymentSucceeded {
		return domain.PaymentSucceeded, nil
	}

	if err := p.payments.UpdateStatus(ctx, intentID, domain.PaymentSucceeded); err != nil {
		return "", err
	}
	if err := p.bookingWriter.UpdateStatus(ctx, pay.TenantID, pay.BookingID, domain.BookingPaid); err != nil {
		return "", err
	}
	return domain.PaymentSucceeded, nil
}

// Refund reverses a settled payment. Only succeeded payments are refundable.
func (p *MockProvider) Refund(ctx context.Context, paymentID string) (domain.PaymentStatus, error) {
	pay, err := p.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPaymentNotFound
		}
		return "", err
	}
	if pay.Status != domain.PaymentSucceeded {
		return "", ErrNotRefundable
	}

	if err := p.sleep(ctx, 500*time.Millisecond, 1500*time.Millisecond); err != nil {
		return "", err
	}
	if err := p.payments.UpdateStatus(ctx, paymentID, domain.PaymentRefunded); err != nil {
		return "", err
	}
	return domain.PaymentRefunded, nil
}

// VerifyWebhook checks the out-of-band signature header against the
// configured secret and parses the event body. No state changes here.
func (p *MockProvider) VerifyWebhook(header http.Header, body []byte) (WebhookEvent, error) {
	sig := header.Get("X-Mock-Signature")
	if subtle.ConstantTimeCompare([]byte(sig), []byte(p.webhookSecret)) != 1 {
		return WebhookEvent{}, ErrInvalidSignature
	}

	var evt WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return WebhookEvent{}, err
	}
	if evt.IntentID == "" {
		return WebhookEvent{}, ErrPaymentNotFound
	}
	if evt.Event == "" {
		evt.Event = EventPaymentSucceeded
	}
	return evt, nil
}
