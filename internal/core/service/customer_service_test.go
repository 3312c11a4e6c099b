package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// memoryCache is a test double for the Redis-backed customer cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[int64]*domain.Customer
	hits    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[int64]*domain.Customer)}
}

func (c *memoryCache) Get(_ context.Context, id int64) (*domain.Customer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[id]
	if ok {
		c.hits++
		cp := *cached
		return &cp, true
	}
	return nil, false
}

func (c *memoryCache) Set(_ context.Context, customer *domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *customer
	c.entries[cp.ID] = &cp
	c.sets++
}

func (c *memoryCache) Invalidate(_ context.Context, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

func seedCustomers(t *testing.T, svc *CustomerService, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := svc.Create(context.Background(), ports.CreateCustomerInput{
			Name:  fmt.Sprintf("Customer %02d", i),
			Email: fmt.Sprintf("customer%02d@example.test", i),
			Phone: fmt.Sprintf("555-01%02d", i),
		})
		if err != nil {
			t.Fatalf("seed customer %d: %v", i, err)
		}
	}
}

func TestCustomerCreate_DuplicateEmailRejected(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Create(ctx, ports.CreateCustomerInput{Name: "Acme", Email: "ops@acme.test", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Create(ctx, ports.CreateCustomerInput{Name: "Other", Email: "ops@acme.test", Phone: "555-0199"})
	if !errors.Is(err, domain.ErrCustomerExists) {
		t.Fatalf("expected ErrCustomerExists on duplicate email, got %v", err)
	}

	// The original record stays reachable.
	if _, err := svc.Get(ctx, first.ID); err != nil {
		t.Errorf("original customer must survive the rejected duplicate: %v", err)
	}
}

func TestCustomerCreate_DuplicatePhoneRejected(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateCustomerInput{Name: "Acme", Email: "ops@acme.test", Phone: "555-0100"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, ports.CreateCustomerInput{Name: "Other", Email: "other@acme.test", Phone: "555-0100"})
	if !errors.Is(err, domain.ErrCustomerExists) {
		t.Fatalf("expected ErrCustomerExists on duplicate phone, got %v", err)
	}
}

func TestCustomerList_PaginationEnvelope(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	seedCustomers(t, svc, 25)

	var collected int
	for page := 1; ; page++ {
		res, err := svc.List(context.Background(), ports.ListCustomersInput{Page: page, Limit: 10})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if res.TotalRecords != 25 {
			t.Fatalf("totalRecords must be 25, got %d", res.TotalRecords)
		}
		if res.TotalPages != 3 {
			t.Fatalf("totalPages must be 3 for 25 records at limit 10, got %d", res.TotalPages)
		}
		collected += len(res.Data)
		if page >= res.TotalPages {
			if len(res.Data) != 5 {
				t.Errorf("last page must hold the 5 remaining records, got %d", len(res.Data))
			}
			break
		}
		if len(res.Data) != 10 {
			t.Errorf("page %d must be full, got %d", page, len(res.Data))
		}
	}
	if collected != 25 {
		t.Errorf("pages must cover every record exactly once, got %d", collected)
	}
}

func TestCustomerList_Defaults(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	seedCustomers(t, svc, 12)

	res, err := svc.List(context.Background(), ports.ListCustomersInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.Limit != 10 {
		t.Errorf("expected defaults page=1 limit=10, got page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Data) != 10 {
		t.Errorf("expected 10 records on the default page, got %d", len(res.Data))
	}
}

func TestCustomerList_LimitClamped(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	seedCustomers(t, svc, 3)

	res, err := svc.List(context.Background(), ports.ListCustomersInput{Page: 1, Limit: 5000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Limit != maxLimit {
		t.Errorf("limit must be clamped to %d, got %d", maxLimit, res.Limit)
	}
}

func TestCustomerList_PageBeyondEnd(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())
	seedCustomers(t, svc, 3)

	res, err := svc.List(context.Background(), ports.ListCustomersInput{Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Data) != 0 {
		t.Errorf("page past the end must be empty, got %d records", len(res.Data))
	}
	if res.TotalRecords != 3 {
		t.Errorf("totalRecords must still be 3, got %d", res.TotalRecords)
	}
}

func TestCustomerGet_CacheReadThrough(t *testing.T) {
	cache := newMemoryCache()
	svc := NewCustomerService(newStubCustomerRepo(), cache, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateCustomerInput{Name: "Acme", Email: "ops@acme.test", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// First read misses and fills the cache; second read is served from it.
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("first read must fill the cache, got %d sets", cache.sets)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("second read must hit the cache, got %d hits", cache.hits)
	}
}

func TestCustomerDelete_InvalidatesCache(t *testing.T) {
	cache := newMemoryCache()
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateCustomerInput{Name: "Acme", Email: "ops@acme.test", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := cache.Get(ctx, created.ID); ok {
		t.Error("delete must invalidate the cache entry")
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound after delete, got %v", err)
	}
}

func TestCustomerDelete_NotFound(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
