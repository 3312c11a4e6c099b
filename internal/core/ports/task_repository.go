package ports

import (
	"context"

	"github.com/prysm/crm-system/internal/core/domain"
)

// ListTasksFilter scopes a task listing. AssignedToID is set by the service
// layer for EMPLOYEE identities; zero means no assignee filter (admin).
type ListTasksFilter struct {
	AssignedToID int64
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// List returns tasks matching filter ordered by created_at descending.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	// UpdateStatus sets the task's status with a single conditional write:
	// the document must match id AND, when assignedToID is non-zero, the
	// assignee. When nothing matches it returns domain.ErrTaskNotFound and
	// persists nothing, which closes the check-then-write race on
	// ownership-gated updates.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, assignedToID int64) (*domain.Task, error)
}

// ActivityRepository persists the append-only task activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.TaskActivity) error
	// ListByTask returns a task's activity entries, newest first.
	ListByTask(ctx context.Context, taskID int64) ([]*domain.TaskActivity, error)
}
