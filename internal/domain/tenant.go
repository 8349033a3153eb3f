package domain

import "time"

// Tenant is the root aggregate: every other record carries its id and is
// never read or written across tenant boundaries.
type Tenant struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug" gorm:"uniqueIndex" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Timezone  string     `json:"timezone" validate:"required"` // IANA identifier, e.g. "America/Panama"
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
