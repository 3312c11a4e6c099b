package handler

import (
	"time"

	"github.com/prysm/crm-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createCustomerRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required"`
	Company string `json:"company,omitempty"`
}

type customerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// listCustomersResponse is the pagination envelope:
// totalPages == ceil(totalRecords/limit).
type listCustomersResponse struct {
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalRecords int64              `json:"totalRecords"`
	TotalPages   int                `json:"totalPages"`
	Data         []customerResponse `json:"data"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: c.CreatedAt.UTC(),
	}
}
