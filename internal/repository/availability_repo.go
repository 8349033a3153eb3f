package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) GetRulesForWeekday(ctx context.Context, tenantID, professionalID int64, weekday int) ([]domain.AvailabilityRule, error) {
	var rules []domain.AvailabilityRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND professional_id = ? AND weekday = ?", tenantID, professionalID, weekday).
		Order("start_time").
		Find(&rules).Error
	return rules, err
}

func (r *AvailabilityRepository) Create(ctx context.Context, rule *domain.AvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}
