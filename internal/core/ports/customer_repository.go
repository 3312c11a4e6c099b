package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing customers.
type ListCustomersFilter struct {
	Search string // optional: partial match on name/email (case-insensitive) or phone (exact substring)
	Skip   int
	Limit  int
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	// FindByEmailOrPhone returns a customer matching either field, or
	// domain.ErrCustomerNotFound when none exists.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Customer, error)
	// List returns a page of customers matching filter, newest first, and the
	// total count across all pages.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
	Delete(ctx context.Context, id int64) error
}
