package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// UserRepository defines persistence operations for users. It backs both
// authentication and the admin users surface.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}
