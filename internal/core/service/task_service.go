package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/metrics"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// ActivityRecorder abstracts the async activity pipeline. Record must never
// block the request path.
type ActivityRecorder interface {
	Record(input ports.TaskActivityInput)
}

// TaskService governs task creation, listing, and status mutation. Role
// checks happen in the authorization middleware before any call lands here;
// resource-level ownership is enforced by this service via the ownership
// policy and a conditional write.
type TaskService struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	customers ports.CustomerRepository
	activity  ports.ActivityRepository
	recorder  ActivityRecorder
	statuses  domain.StatusSet
	logger    zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	customers ports.CustomerRepository,
	activity ports.ActivityRepository,
	recorder ActivityRecorder,
	statuses domain.StatusSet,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		users:     users,
		customers: customers,
		activity:  activity,
		recorder:  recorder,
		statuses:  statuses,
		logger:    logger,
	}
}

// Create validates the assignment and persists a new task. The assignee must
// resolve to an existing EMPLOYEE and the customer must exist; nothing is
// persisted when either check fails.
func (s *TaskService) Create(ctx context.Context, identity domain.Identity, input ports.CreateTaskInput) (*ports.TaskDetail, error) {
	assignee, err := s.users.FindByID(ctx, input.AssignedToID)
	if err != nil {
		return nil, err
	}
	if assignee.Role != domain.RoleEmployee {
		return nil, domain.ErrInvalidAssignment
	}

	customer, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = s.statuses.Default()
	} else if !s.statuses.Contains(status) {
		return nil, domain.ErrInvalidStatus
	}

	task := &domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		AssignedToID: input.AssignedToID,
		CustomerID:   input.CustomerID,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().
		Int64("task_id", created.ID).
		Int64("assigned_to", created.AssignedToID).
		Int64("customer_id", created.CustomerID).
		Msg("task created")

	s.record(ports.TaskActivityInput{
		TaskID:     created.ID,
		Status:     created.Status,
		ActorID:    identity.UserID,
		ActorEmail: identity.Email,
		Note:       "task created",
		Timestamp:  created.CreatedAt,
	})

	return s.detail(created, assignee, customer), nil
}

// List returns all tasks for ADMIN identities and only the caller's assigned
// tasks for EMPLOYEE identities, most recently created first.
func (s *TaskService) List(ctx context.Context, identity domain.Identity) ([]*ports.TaskDetail, error) {
	filter := ports.ListTasksFilter{}
	if identity.Role == domain.RoleEmployee {
		filter.AssignedToID = identity.UserID
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.join(ctx, tasks)
}

// Get returns a task by id with joined summaries. Reads are allowed for any
// authenticated role; ownership gates status mutation only.
func (s *TaskService) Get(ctx context.Context, identity domain.Identity, id int64) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanActOnTask(identity, task, domain.TaskActionRead) {
		return nil, domain.ErrForbidden
	}

	details, err := s.join(ctx, []*domain.Task{task})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// UpdateStatus applies a status change. EMPLOYEE callers may only update
// tasks assigned to them; the write itself is conditional on ownership so a
// concurrent reassignment cannot slip past the check.
func (s *TaskService) UpdateStatus(ctx context.Context, identity domain.Identity, id int64, status domain.TaskStatus) (*ports.TaskDetail, error) {
	if !s.statuses.Contains(status) {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanActOnTask(identity, task, domain.TaskActionUpdateStatus) {
		metrics.AuthDenialsTotal.WithLabelValues("ownership").Inc()
		return nil, domain.ErrForbidden
	}

	var ownerFilter int64
	if identity.Role == domain.RoleEmployee {
		ownerFilter = identity.UserID
	}

	updated, err := s.tasks.UpdateStatus(ctx, id, status, ownerFilter)
	if err != nil {
		// The task existed a moment ago, so a conditional miss means the
		// assignment changed between the check and the write.
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.AuthDenialsTotal.WithLabelValues("ownership").Inc()
			return nil, domain.ErrForbidden
		}
		return nil, err
	}

	metrics.TaskStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().
		Int64("task_id", id).
		Str("status", string(status)).
		Int64("actor_id", identity.UserID).
		Msg("task status updated")

	s.record(ports.TaskActivityInput{
		TaskID:     updated.ID,
		Status:     updated.Status,
		ActorID:    identity.UserID,
		ActorEmail: identity.Email,
		Timestamp:  time.Now().UTC(),
	})

	details, err := s.join(ctx, []*domain.Task{updated})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// Activity returns a task's audit trail, newest first.
func (s *TaskService) Activity(ctx context.Context, identity domain.Identity, id int64) ([]*domain.TaskActivity, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(identity, task, domain.TaskActionRead) {
		return nil, domain.ErrForbidden
	}

	return s.activity.ListByTask(ctx, id)
}

func (s *TaskService) record(input ports.TaskActivityInput) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(input)
}

// join resolves assignee and customer summaries for a batch of tasks,
// fetching each referenced entity once. A dangling reference (entity deleted
// after the task was created) degrades to a bare-id summary instead of
// failing the whole read.
func (s *TaskService) join(ctx context.Context, tasks []*domain.Task) ([]*ports.TaskDetail, error) {
	assignees := make(map[int64]*domain.User)
	customers := make(map[int64]*domain.Customer)

	out := make([]*ports.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		assignee, seen := assignees[t.AssignedToID]
		if !seen {
			u, err := s.users.FindByID(ctx, t.AssignedToID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			assignee = u
			assignees[t.AssignedToID] = u
		}

		customer, seen := customers[t.CustomerID]
		if !seen {
			c, err := s.customers.FindByID(ctx, t.CustomerID)
			if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) {
				return nil, err
			}
			customer = c
			customers[t.CustomerID] = c
		}

		out = append(out, s.detail(t, assignee, customer))
	}
	return out, nil
}

func (s *TaskService) detail(t *domain.Task, assignee *domain.User, customer *domain.Customer) *ports.TaskDetail {
	d := &ports.TaskDetail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssignedTo:  ports.AssigneeSummary{ID: t.AssignedToID},
		Customer:    ports.CustomerSummary{ID: t.CustomerID},
		CreatedAt:   t.CreatedAt,
	}
	if assignee != nil {
		d.AssignedTo = ports.AssigneeSummary{ID: assignee.ID, Name: assignee.Name, Email: assignee.Email}
	}
	if customer != nil {
		d.Customer = ports.CustomerSummary{ID: customer.ID, Name: customer.Name, Email: customer.Email, Phone: customer.Phone}
	}
	return d
}
