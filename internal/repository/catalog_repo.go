package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

// CatalogRepository reads tenant-owned services and professionals. Every
// query is scoped by tenant id; there is no cross-tenant lookup path.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetActiveService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	var svc domain.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", serviceID, tenantID, true).
		First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *CatalogRepository) GetActiveProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error) {
	var pro domain.Professional
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", professionalID, tenantID, true).
		First(&pro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pro, nil
}

func (r *CatalogRepository) ListServices(ctx context.Context, tenantID int64) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name").
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) ListProfessionals(ctx context.Context, tenantID int64) ([]domain.Professional, error) {
	var out []domain.Professional
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("full_name").
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogRepository) CreateProfessional(ctx context.Context, p *domain.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}
