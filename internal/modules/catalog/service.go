package catalog

import (
	"context"
	"errors"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/validator"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type Service struct {
	tenants TenantRepository
	catalog CatalogRepository
	rules   RuleRepository
}

func NewService(tenants TenantRepository, catalog CatalogRepository, rules RuleRepository) *Service {
	return &Service{tenants: tenants, catalog: catalog, rules: rules}
}

// GetCatalog returns the active services and professionals the public widget
// offers for a tenant.
func (s *Service) GetCatalog(ctx context.Context, slug string) (*CatalogResponse, error) {
	if slug == "" {
		return nil, ErrValidation
	}
	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	services, err := s.catalog.ListServices(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	professionals, err := s.catalog.ListProfessionals(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &CatalogResponse{Services: services, Professionals: professionals}, nil
}

func (s *Service) CreateService(ctx context.Context, tenantID int64, req CreateServiceRequest) (*domain.Service, error) {
	svc := &domain.Service{
		TenantID:        tenantID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        true,
	}
	if errs := validator.Validate(svc); errs != nil {
		return nil, FieldErrors(errs)
	}
	if err := s.catalog.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) CreateProfessional(ctx context.Context, tenantID int64, req CreateProfessionalRequest) (*domain.Professional, error) {
	pro := &domain.Professional{
		TenantID:  tenantID,
		FullName:  req.FullName,
		Specialty: req.Specialty,
		IsActive:  true,
	}
	if errs := validator.Validate(pro); errs != nil {
		return nil, FieldErrors(errs)
	}
	if err := s.catalog.CreateProfessional(ctx, pro); err != nil {
		return nil, err
	}
	return pro, nil
}

// CreateRule adds a weekly availability window. Start and end are wall-clock
// "HH:MM"; the window must fit at least one slot.
func (s *Service) CreateRule(ctx context.Context, tenantID int64, req CreateRuleRequest) (*domain.AvailabilityRule, error) {
	start, err := timeutil.ToMinutes(req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := timeutil.ToMinutes(req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if start+req.SlotSizeMinutes > end {
		return nil, ErrValidation
	}

	rule := &domain.AvailabilityRule{
		TenantID:        tenantID,
		ProfessionalID:  req.ProfessionalID,
		Weekday:         req.Weekday,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotSizeMinutes: req.SlotSizeMinutes,
	}
	if errs := validator.Validate(rule); errs != nil {
		return nil, FieldErrors(errs)
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}
