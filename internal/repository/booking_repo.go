package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
)

// ErrOverlap is returned when the transactional re-check finds the requested
// window already held by a non-cancelled booking.
var ErrOverlap = errors.New("booking window overlaps an existing booking")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BusyWindow is an occupied [Start, End) interval.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// BusyWindowsFor returns the occupied windows of a professional that
// intersect [from, to). Cancelled bookings never occupy; pending ones do — a
// prepay in flight still holds its slot. The window end is derived from the
// duration stored on the booking row, not the current service definition.
func (r *BookingRepository) BusyWindowsFor(ctx context.Context, tenantID, professionalID int64, from, to time.Time) ([]BusyWindow, error) {
	rows, err := r.candidateRows(r.db.WithContext(ctx), tenantID, professionalID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]BusyWindow, 0, len(rows))
	for _, b := range rows {
		if b.EndsAt().After(from) {
			out = append(out, BusyWindow{Start: b.ScheduledAt, End: b.EndsAt()})
		}
	}
	return out, nil
}

// candidateRows fetches non-cancelled bookings that could intersect the
// window. Durations are bounded by a day, so starting the scan a day early
// is enough; the precise half-open test happens in Go against the stored
// duration.
func (r *BookingRepository) candidateRows(tx *gorm.DB, tenantID, professionalID int64, from, to time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := tx.
		Where("tenant_id = ? AND professional_id = ? AND status <> ?", tenantID, professionalID, domain.BookingCancelled).
		Where("scheduled_at < ? AND scheduled_at > ?", to, from.Add(-24*time.Hour)).
		Find(&rows).Error
	return rows, err
}

// Reserve re-checks the slot and inserts the booking inside one transaction.
// The re-check and the insert are atomic with respect to other reservations:
// SQLite serializes the write transaction, and on Postgres the
// bookings_no_overlap exclusion constraint rejects a racing insert that the
// read missed (surfaced as *pgconn.PgError by the caller's mapping).
func (r *BookingRepository) Reserve(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		end := b.EndsAt()
		rows, err := r.candidateRows(tx, b.TenantID, b.ProfessionalID, b.ScheduledAt, end)
		if err != nil {
			return err
		}
		for _, existing := range rows {
			if timeutil.OverlapsTime(b.ScheduledAt, end, existing.ScheduledAt, existing.EndsAt()) {
				return ErrOverlap
			}
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetForTenant loads a booking owned by the given tenant. A booking that
// exists under another tenant is reported as ErrNotFound.
func (r *BookingRepository) GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	if status == domain.BookingCancelled {
		now := time.Now().UTC()
		updates["cancelled_at"] = &now
	}
	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ? AND tenant_id = ?", id, tenantID).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForRange returns a tenant's bookings scheduled in [from, to),
// optionally filtered by professional.
func (r *BookingRepository) ListForRange(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantID, from, to).
		Order("scheduled_at")
	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}
	var rows []domain.Booking
	err := q.Find(&rows).Error
	return rows, err
}

// ExportRow is one denormalized line of the staff CSV export.
type ExportRow struct {
	BookingID        int64     `gorm:"column:booking_id"`
	ScheduledAt      time.Time `gorm:"column:scheduled_at"`
	Status           string    `gorm:"column:status"`
	ServiceName      string    `gorm:"column:service_name"`
	ProfessionalName string    `gorm:"column:professional_name"`
	PatientName      string    `gorm:"column:patient_name"`
	PatientPhone     string    `gorm:"column:patient_phone"`
	DurationMinutes  int       `gorm:"column:duration_minutes"`
	PriceCents       int64     `gorm:"column:price_cents"`
}

func (r *BookingRepository) ListForExport(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64, status string) ([]ExportRow, error) {
	q := `
SELECT b.id AS booking_id, b.scheduled_at, b.status,
       s.name AS service_name, p.full_name AS professional_name,
       b.patient_name, b.patient_phone, b.duration_minutes, b.price_cents
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN professionals p ON p.id = b.professional_id
WHERE b.tenant_id = ? AND b.scheduled_at >= ? AND b.scheduled_at < ?
`
	args := []any{tenantID, from, to}
	if professionalID != 0 {
		q += " AND b.professional_id = ?"
		args = append(args, professionalID)
	}
	if status != "" {
		q += " AND b.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY b.scheduled_at"

	var rows []ExportRow
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error
	return rows, err
}

// MessageContext is the flattened booking context used to render outbound
// messages. Joined names are normalized to plain scalars here, once, at the
// persistence boundary.
type MessageContext struct {
	BookingID        int64     `gorm:"column:booking_id"`
	TenantID         int64     `gorm:"column:tenant_id"`
	ScheduledAt      time.Time `gorm:"column:scheduled_at"`
	PatientName      string    `gorm:"column:patient_name"`
	PatientPhone     string    `gorm:"column:patient_phone"`
	ServiceName      string    `gorm:"column:service_name"`
	ProfessionalName string    `gorm:"column:professional_name"`
	TenantName       string    `gorm:"column:tenant_name"`
	TenantSlug       string    `gorm:"column:tenant_slug"`
	Timezone         string    `gorm:"column:timezone"`
}

func (r *BookingRepository) GetMessageContext(ctx context.Context, bookingID int64) (*MessageContext, error) {
	q := `
SELECT b.id AS booking_id, b.tenant_id, b.scheduled_at, b.patient_name, b.patient_phone,
       s.name AS service_name, p.full_name AS professional_name,
       t.name AS tenant_name, t.slug AS tenant_slug, t.timezone
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN professionals p ON p.id = b.professional_id
JOIN tenants t ON t.id = b.tenant_id
WHERE b.id = ?
`
	var mc MessageContext
	tx := r.db.WithContext(ctx).Raw(q, bookingID).Scan(&mc)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if mc.BookingID == 0 {
		return nil, ErrNotFound
	}
	return &mc, nil
}
