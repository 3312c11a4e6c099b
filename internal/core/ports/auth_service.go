package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
