package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// UserService is the admin-only users surface.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}
