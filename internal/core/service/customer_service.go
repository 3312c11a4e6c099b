package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/metrics"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// CustomerCache abstracts the read-through cache in front of customer
// lookups (Redis). Implementations must fail safe: an unavailable cache
// behaves like a miss.
type CustomerCache interface {
	Get(ctx context.Context, id int64) (*domain.Customer, bool)
	Set(ctx context.Context, c *domain.Customer)
	Invalidate(ctx context.Context, id int64)
}

// CustomerService implements customer CRUD with paginated search.
type CustomerService struct {
	customers ports.CustomerRepository
	cache     CustomerCache
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, cache CustomerCache, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, cache: cache, logger: logger}
}

// Create persists a new customer, rejecting duplicates on email or phone.
func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	existing, err := s.customers.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCustomerExists
	}

	customer := &domain.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	metrics.CustomersCreatedTotal.Inc()
	s.logger.Info().Int64("customer_id", created.ID).Msg("customer created")
	return created, nil
}

// List returns a page of customers, newest first. Search is a
// case-insensitive substring over name and email plus an exact substring
// over phone.
func (s *CustomerService) List(ctx context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	data, total, err := s.customers.List(ctx, ports.ListCustomersFilter{
		Search: input.Search,
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListCustomersResult{
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   totalPages,
		Data:         data,
	}, nil
}

// Get returns a customer by id, consulting the cache first.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, id); ok {
			metrics.CustomerCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CustomerCacheTotal.WithLabelValues("miss").Inc()
	}

	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, customer)
	}
	return customer, nil
}

// Delete removes a customer. Tasks referencing the customer keep their
// reference; task reads degrade to a bare-id customer summary.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}
