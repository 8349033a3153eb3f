package catalog

import (
	"context"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

type CatalogRepository interface {
	ListServices(ctx context.Context, tenantID int64) ([]domain.Service, error)
	ListProfessionals(ctx context.Context, tenantID int64) ([]domain.Professional, error)
	CreateService(ctx context.Context, s *domain.Service) error
	CreateProfessional(ctx context.Context, p *domain.Professional) error
}

type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) error
}
