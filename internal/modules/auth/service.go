package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/jwt"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}

type Service struct {
	staff StaffRepository
	jwt   *jwt.Service
}

func NewService(staff StaffRepository, jwtService *jwt.Service) *Service {
	return &Service{staff: staff, jwt: jwtService}
}

// Login verifies staff credentials and issues a tenant-scoped token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.TenantID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     string(user.Role),
	}, nil
}
