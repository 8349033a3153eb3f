package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPaid      BookingStatus = "paid"
	BookingAttended  BookingStatus = "attended"
	BookingNoShow    BookingStatus = "no_show"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking holds an appointment slot. DurationMinutes and PriceCents are
// copied from the service at creation time and never re-read: services can
// change after a booking exists, conflict detection must keep using the
// values stored here.
type Booking struct {
	ID              int64         `json:"id"`
	TenantID        int64         `json:"tenant_id" validate:"required"`
	ServiceID       int64         `json:"service_id" validate:"required"`
	ProfessionalID  int64         `json:"professional_id" validate:"required"`
	ScheduledAt     time.Time     `json:"scheduled_at" validate:"required"`
	DurationMinutes int           `json:"duration_minutes" validate:"required,gt=0"`
	PriceCents      int64         `json:"price_cents" validate:"gte=0"`
	PatientName     string        `json:"patient_name" validate:"required"`
	PatientPhone    string        `json:"patient_phone" validate:"required"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
}

// EndsAt is the exclusive end of the occupied window.
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// CanTransitionTo enforces the booking state machine. cancelled is terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingPending:
		return next == BookingPaid || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingPaid || next == BookingAttended || next == BookingNoShow || next == BookingCancelled
	case BookingPaid:
		return next == BookingAttended || next == BookingNoShow || next == BookingCancelled
	default:
		return false
	}
}
