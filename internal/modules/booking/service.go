package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

var reminderHours = []int{24, 3}

type Service struct {
	tenants  TenantRepository
	catalog  CatalogRepository
	bookings BookingRepository
	payments PaymentProvider
	messages Messenger
	events   EventSink
	loggerf  func(format string, args ...interface{})
}

func NewService(
	tenants TenantRepository,
	catalog CatalogRepository,
	bookings BookingRepository,
	payments PaymentProvider,
	messages Messenger,
	events EventSink,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		tenants:  tenants,
		catalog:  catalog,
		bookings: bookings,
		payments: payments,
		messages: messages,
		events:   events,
		loggerf:  loggerf,
	}
}

// Reserve creates a booking for a slot, re-validating freeness at commit
// time. The earlier slot listing is advisory only; the repository's
// transactional re-check (backed on Postgres by the bookings_no_overlap
// exclusion constraint) is the authoritative one, so two racing requests for
// overlapping windows can never both succeed.
//
// The write is the trust boundary: every validation and conflict error
// aborts before it. After the row exists, payment failure leaves the booking
// in pending for a later retry, and messaging failures are logged and
// swallowed — the slot is already correctly held.
func (s *Service) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error) {
	tenant, err := s.tenants.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	svc, err := s.catalog.GetActiveService(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	pro, err := s.catalog.GetActiveProfessional(ctx, tenant.ID, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	scheduledAt, err := timeutil.LocalToInstant(req.Date, req.Time, tenant.Timezone)
	if err != nil {
		return nil, ErrValidation
	}

	status := domain.BookingConfirmed
	if req.Prepay {
		status = domain.BookingPending
	}

	b := &domain.Booking{
		TenantID:        tenant.ID,
		ServiceID:       svc.ID,
		ProfessionalID:  pro.ID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: svc.DurationMinutes,
		PriceCents:      svc.PriceCents,
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		Status:          status,
	}

	if err := s.bookings.Reserve(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrSlotTaken
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			// 23P01 exclusion_violation: a racing insert lost to the
			// bookings_no_overlap constraint
			if pgErr.Code == "23P01" || (pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_no_overlap") {
				return nil, ErrSlotTaken
			}
		}
		return nil, err
	}

	result := &ReserveResult{Booking: b}
	if req.Prepay {
		s.collectPrepay(ctx, b, result)
	}

	s.enqueueNotifications(ctx, b)

	if s.events != nil {
		s.events.BookingCreated(b)
	}

	return result, nil
}

func (s *Service) collectPrepay(ctx context.Context, b *domain.Booking, result *ReserveResult) {
	intentID, err := s.payments.CreateIntent(ctx, b.ID)
	if err != nil {
		s.loggerf("level=error msg=payment intent creation failed booking_id=%d err=%v", b.ID, err)
		result.PaymentStatus = domain.PaymentFailed
		result.PaymentError = err.Error()
		return
	}

	status, err := s.payments.Confirm(ctx, intentID)
	if err != nil {
		s.loggerf("level=error msg=payment confirmation failed booking_id=%d intent_id=%s err=%v", b.ID, intentID, err)
		result.PaymentStatus = domain.PaymentFailed
		result.PaymentError = err.Error()
		return
	}

	result.PaymentStatus = status
	if status == domain.PaymentSucceeded {
		// the provider already cascaded the stored row to paid
		b.Status = domain.BookingPaid
	}
}

func (s *Service) enqueueNotifications(ctx context.Context, b *domain.Booking) {
	if s.messages == nil {
		return
	}

	if _, err := s.messages.EnqueueConfirmation(ctx, b.ID); err != nil {
		s.loggerf("level=warn msg=confirmation enqueue failed booking_id=%d err=%v", b.ID, err)
	}

	now := time.Now()
	for _, hours := range reminderHours {
		due := b.ScheduledAt.Add(-time.Duration(hours) * time.Hour)
		if due.Before(now) {
			continue
		}
		if _, err := s.messages.ScheduleReminder(ctx, b.ID, due, hours); err != nil {
			s.loggerf("level=warn msg=reminder enqueue failed booking_id=%d hours_before=%d err=%v", b.ID, hours, err)
		}
	}
}

// UpdateStatus applies a staff transition (attended, no_show, cancelled, ...)
// under the booking state machine. cancelled is terminal. The tenant id
// comes from the caller's token; a booking under another tenant is
// indistinguishable from a missing one.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	switch next {
	case domain.BookingPaid, domain.BookingAttended, domain.BookingNoShow, domain.BookingCancelled:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetForTenant(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, tenantID, bookingID, next); err != nil {
		return nil, err
	}
	b.Status = next

	if s.events != nil {
		s.events.BookingStatusChanged(b)
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetForTenant(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
