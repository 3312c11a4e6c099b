package ports

import (
	"context"
	"time"

	"github.com/prysm/crm-system/internal/core/domain"
)

// CreateTaskInput carries the already-validated fields for a new task.
// Status is optional; empty defaults to the configured initial status.
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       domain.TaskStatus
	AssignedToID int64
	CustomerID   int64
}

// AssigneeSummary is the user view joined into task results.
type AssigneeSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerSummary is the customer view joined into task results.
type CustomerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TaskDetail is a task joined with its assignee and customer summaries.
type TaskDetail struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      domain.TaskStatus `json:"status"`
	AssignedTo  AssigneeSummary   `json:"assigned_to"`
	Customer    CustomerSummary   `json:"customer"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskActivityInput is one activity record handed to the async recorder.
type TaskActivityInput struct {
	TaskID     int64
	Status     domain.TaskStatus
	ActorID    int64
	ActorEmail string
	Note       string
	Timestamp  time.Time
}

// TaskService defines use-case operations for tasks. Every operation takes
// the caller's identity explicitly; there is no ambient request state.
type TaskService interface {
	Create(ctx context.Context, identity domain.Identity, input CreateTaskInput) (*TaskDetail, error)
	List(ctx context.Context, identity domain.Identity) ([]*TaskDetail, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*TaskDetail, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, id int64, status domain.TaskStatus) (*TaskDetail, error)
	Activity(ctx context.Context, identity domain.Identity, id int64) ([]*domain.TaskActivity, error)
}

// ActivityService processes task activity records off the request path.
type ActivityService interface {
	Process(ctx context.Context, input TaskActivityInput) error
}
