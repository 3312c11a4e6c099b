package domain

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrCustomerExists = errors.New("customer with this email or phone already exists")

// Customer is a CRM customer record. Email and phone are unique.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
