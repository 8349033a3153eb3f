package domain

import "time"

// AvailabilityRule is one weekly recurring window for a professional.
// A professional may have several rules per weekday (morning/afternoon blocks).
// StartTime/EndTime are wall-clock "HH:MM" in the tenant's timezone.
type AvailabilityRule struct {
	ID              int64     `json:"id"`
	TenantID        int64     `json:"tenant_id"`
	ProfessionalID  int64     `json:"professional_id"`
	Weekday         int       `json:"weekday" validate:"gte=0,lte=6"` // 0=Sunday .. 6=Saturday
	StartTime       string    `json:"start_time" validate:"required"`
	EndTime         string    `json:"end_time" validate:"required"`
	SlotSizeMinutes int       `json:"slot_size_minutes" validate:"required,gt=0"`
	CreatedAt       time.Time `json:"created_at"`
}
