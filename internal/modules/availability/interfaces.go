package availability

import (
	"context"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

type CatalogRepository interface {
	GetActiveService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

type RuleRepository interface {
	GetRulesForWeekday(ctx context.Context, tenantID, professionalID int64, weekday int) ([]domain.AvailabilityRule, error)
}

type BookingRepository interface {
	BusyWindowsFor(ctx context.Context, tenantID, professionalID int64, from, to time.Time) ([]repository.BusyWindow, error)
}
