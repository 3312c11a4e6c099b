package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// UserService is the admin-only users surface: listing, lookup, and role
// changes. Role checks happen in the authorization middleware.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Str("role", string(role)).Msg("user role updated")
	return updated, nil
}
