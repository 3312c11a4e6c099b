package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// CreateCustomerInput carries the already-validated fields for a new customer.
type CreateCustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// ListCustomersInput carries pagination and search parameters as received
// from the transport layer; the service normalizes them.
type ListCustomersInput struct {
	Page   int
	Limit  int
	Search string
}

// ListCustomersResult is the pagination envelope returned by List.
type ListCustomersResult struct {
	Page         int
	Limit        int
	TotalRecords int64
	TotalPages   int
	Data         []*domain.Customer
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	List(ctx context.Context, input ListCustomersInput) (*ListCustomersResult, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
