package domain

import "time"

type Professional struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	FullName  string    `json:"full_name" validate:"required"`
	Specialty string    `json:"specialty,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
