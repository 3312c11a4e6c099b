package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prysm/crm-system/internal/core/domain"
)

const customerTTL = 5 * time.Minute

// CustomerCache is a read-through cache for customer lookups. It fails safe:
// any Redis error behaves like a cache miss and writes are best-effort, so an
// unavailable cache never breaks a request.
type CustomerCache struct {
	client *redis.Client
}

// NewCustomerCache creates a CustomerCache wrapping the given Redis client.
func NewCustomerCache(client *redis.Client) *CustomerCache {
	return &CustomerCache{client: client}
}

// Get returns the cached customer and true on a hit.
func (c *CustomerCache) Get(ctx context.Context, id int64) (*domain.Customer, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var customer domain.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		return nil, false
	}
	return &customer, true
}

// Set stores the customer with a short TTL, ignoring Redis errors.
func (c *CustomerCache) Set(ctx context.Context, customer *domain.Customer) {
	raw, err := json.Marshal(customer)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(customer.ID), raw, customerTTL).Err()
}

// Invalidate removes a cached customer, ignoring Redis errors.
func (c *CustomerCache) Invalidate(ctx context.Context, id int64) {
	_ = c.client.Del(ctx, c.key(id)).Err()
}

func (c *CustomerCache) key(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}
