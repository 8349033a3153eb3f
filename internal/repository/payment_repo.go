package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSucceededInRange returns succeeded payments created in [from, to) for
// revenue KPIs.
func (r *PaymentRepository) ListSucceededInRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Payment, error) {
	var rows []domain.Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			tenantID, domain.PaymentSucceeded, from, to).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

// SucceededCentsByBooking sums succeeded amounts per booking id.
func (r *PaymentRepository) SucceededCentsByBooking(ctx context.Context, bookingIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	type row struct {
		BookingID int64 `gorm:"column:booking_id"`
		Cents     int64 `gorm:"column:cents"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("booking_id, SUM(amount_cents) AS cents").
		Where("booking_id IN ? AND status = ?", bookingIDs, domain.PaymentSucceeded).
		Group("booking_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.BookingID] = r.Cents
	}
	return out, nil
}
