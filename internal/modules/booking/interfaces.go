package booking

import (
	"context"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

type CatalogRepository interface {
	GetActiveService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
	GetActiveProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error)
}

type BookingRepository interface {
	Reserve(ctx context.Context, b *domain.Booking) error
	GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
}

// PaymentProvider is the slice of the payments contract the reservation
// flow needs.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, bookingID int64) (string, error)
	Confirm(ctx context.Context, intentID string) (domain.PaymentStatus, error)
}

// Messenger enqueues best-effort notifications; failures never fail a booking.
type Messenger interface {
	EnqueueConfirmation(ctx context.Context, bookingID int64) (int64, error)
	ScheduleReminder(ctx context.Context, bookingID int64, dueAt time.Time, hoursBefore int) (int64, error)
}

// EventSink receives booking lifecycle events for the staff dashboard feed.
type EventSink interface {
	BookingCreated(b *domain.Booking)
	BookingStatusChanged(b *domain.Booking)
}
