package messaging

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

const ProviderMock = "mock"

// MockProvider persists notifications as rows and "delivers" them by logging
// the rendered text. Delivery latency simulates a WhatsApp/SMS gateway call.
type MockProvider struct {
	messages messageRepo
	contexts contextReader
	loggerf  func(format string, args ...any)

	// sleep is swappable so tests run without the simulated latency.
	sleep func(ctx context.Context, min, max time.Duration) error
}

func NewMockProvider(messages messageRepo, contexts contextReader, loggerf func(format string, args ...any)) *MockProvider {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &MockProvider{
		messages: messages,
		contexts: contexts,
		loggerf:  loggerf,
		sleep:    randomSleep,
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

// EnqueueConfirmation queues an immediate confirmation for a booking.
func (p *MockProvider) EnqueueConfirmation(ctx context.Context, bookingID int64) (int64, error) {
	mc, err := p.contexts.GetMessageContext(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBookingNotFound
		}
		return 0, err
	}

	m := &domain.Message{
		TenantID:  mc.TenantID,
		BookingID: mc.BookingID,
		Provider:  ProviderMock,
		Type:      domain.MessageConfirmation,
		Status:    domain.MessageQueued,
		ToSendAt:  time.Now(),
	}
	if err := p.messages.Create(ctx, m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// ScheduleReminder queues a reminder due at dueAt. The caller decides the
// offsets; past-due reminders are its problem, not ours.
func (p *MockProvider) ScheduleReminder(ctx context.Context, bookingID int64, dueAt time.Time, hoursBefore int) (int64, error) {
	mc, err := p.contexts.GetMessageContext(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBookingNotFound
		}
		return 0, err
	}

	m := &domain.Message{
		TenantID:    mc.TenantID,
		BookingID:   mc.BookingID,
		Provider:    ProviderMock,
		Type:        domain.MessageReminder,
		Status:      domain.MessageQueued,
		HoursBefore: hoursBefore,
		ToSendAt:    dueAt,
	}
	if err := p.messages.Create(ctx, m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Send delivers one queued message. Idempotent: anything not in status queued
// is a no-op, so a dispatcher retrying an already-sent row does nothing.
func (p *MockProvider) Send(ctx context.Context, messageID int64) error {
	m, err := p.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if m.Status != domain.MessageQueued {
		return nil
	}

	mc, err := p.contexts.GetMessageContext(ctx, m.BookingID)
	if err != nil {
		p.markFailed(ctx, m.ID, err)
		return err
	}

	var text string
	switch m.Type {
	case domain.MessageReminder:
		text = reminderText(mc, m.HoursBefore)
	default:
		text = confirmationText(mc)
	}

	if err := p.sleep(ctx, 300*time.Millisecond, 1200*time.Millisecond); err != nil {
		return err
	}

	p.loggerf("level=info msg=mock message delivered message_id=%d type=%s to=%s text=%q",
		m.ID, m.Type, mc.PatientPhone, text)

	if err := p.messages.MarkSent(ctx, m.ID, text, time.Now()); err != nil {
		return err
	}
	return nil
}

func (p *MockProvider) markFailed(ctx context.Context, id int64, cause error) {
	if err := p.messages.MarkFailed(ctx, id, cause.Error()); err != nil {
		p.loggerf("level=error msg=mark message failed message_id=%d err=%v", id, err)
	}
}
