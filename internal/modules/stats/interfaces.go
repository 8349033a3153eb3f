package stats

import (
	"context"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

type BookingRepository interface {
	ListForRange(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64) ([]domain.Booking, error)
	ListForExport(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64, status string) ([]repository.ExportRow, error)
}

type PaymentRepository interface {
	ListSucceededInRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Payment, error)
	SucceededCentsByBooking(ctx context.Context, bookingIDs []int64) (map[int64]int64, error)
}
