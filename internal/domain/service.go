package domain

import "time"

// Service is a bookable clinic service. DurationMinutes drives both the slot
// length and the conflict window of bookings created from it.
type Service struct {
	ID              int64     `json:"id"`
	TenantID        int64     `json:"tenant_id"`
	Name            string    `json:"name" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	PriceCents      int64     `json:"price_cents" validate:"gte=0"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
