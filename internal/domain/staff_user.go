package domain

import "time"

type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
)

// StaffUser can sign in to the dashboard of a single tenant.
type StaffUser struct {
	ID           int64     `json:"id"`
	TenantID     int64     `json:"tenant_id"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
