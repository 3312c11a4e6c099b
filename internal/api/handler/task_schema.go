package handler

import (
	"time"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

type createTaskRequest struct {
	Title        string `json:"title"          validate:"required"`
	Description  string `json:"description,omitempty"`
	AssignedToID int64  `json:"assigned_to_id" validate:"required,gt=0"`
	CustomerID   int64  `json:"customer_id"    validate:"required,gt=0"`
	// Status is optional; empty defaults to the initial status.
	Status string `json:"status,omitempty"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assigneeResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskCustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type taskResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      string               `json:"status"`
	AssignedTo  assigneeResponse     `json:"assigned_to"`
	Customer    taskCustomerResponse `json:"customer"`
	CreatedAt   time.Time            `json:"created_at"`
}

type taskActivityResponse struct {
	ID         int64     `json:"id"`
	Status     string    `json:"status"`
	ActorID    int64     `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Note       string    `json:"note,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func toTaskResponse(d *ports.TaskDetail) taskResponse {
	return taskResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		AssignedTo: assigneeResponse{
			ID:    d.AssignedTo.ID,
			Name:  d.AssignedTo.Name,
			Email: d.AssignedTo.Email,
		},
		Customer: taskCustomerResponse{
			ID:    d.Customer.ID,
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
			Phone: d.Customer.Phone,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func toTaskListResponse(details []*ports.TaskDetail) []taskResponse {
	out := make([]taskResponse, len(details))
	for i, d := range details {
		out[i] = toTaskResponse(d)
	}
	return out
}

func toActivityResponse(entries []*domain.TaskActivity) []taskActivityResponse {
	out := make([]taskActivityResponse, len(entries))
	for i, e := range entries {
		out[i] = taskActivityResponse{
			ID:         e.ID,
			Status:     string(e.Status),
			ActorID:    e.ActorID,
			ActorEmail: e.ActorEmail,
			Note:       e.Note,
			Timestamp:  e.Timestamp.UTC(),
		}
	}
	return out
}
