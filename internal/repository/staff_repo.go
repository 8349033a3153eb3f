package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	var u domain.StaffUser
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *StaffRepository) Create(ctx context.Context, u *domain.StaffUser) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}
