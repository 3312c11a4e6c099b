package domain

import (
	"errors"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("you can only update your own assigned tasks")
var ErrInvalidAssignment = errors.New("task must be assigned to an EMPLOYEE")
var ErrInvalidStatus = errors.New("unknown task status")

// StatusSet is the set of task statuses the deployment accepts. The set comes
// from configuration; any member may transition to any other member.
type StatusSet struct {
	members map[TaskStatus]struct{}
	ordered []TaskStatus
}

// NewStatusSet builds a StatusSet from configured status names. Empty or
// all-blank input falls back to PENDING, IN_PROGRESS, COMPLETED.
func NewStatusSet(names []string) StatusSet {
	set := StatusSet{members: make(map[TaskStatus]struct{})}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		st := TaskStatus(n)
		if _, dup := set.members[st]; dup {
			continue
		}
		set.members[st] = struct{}{}
		set.ordered = append(set.ordered, st)
	}
	if len(set.ordered) == 0 {
		return NewStatusSet([]string{string(StatusPending), string(StatusInProgress), string(StatusCompleted)})
	}
	return set
}

// Contains reports whether st is an accepted status.
func (s StatusSet) Contains(st TaskStatus) bool {
	_, ok := s.members[st]
	return ok
}

// Default returns the status assigned to newly created tasks: PENDING when
// the set contains it, otherwise the first configured status.
func (s StatusSet) Default() TaskStatus {
	if s.Contains(StatusPending) {
		return StatusPending
	}
	return s.ordered[0]
}

// Values returns the configured statuses in declaration order.
func (s StatusSet) Values() []TaskStatus {
	out := make([]TaskStatus, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Task is the core aggregate: a unit of work assigned to an EMPLOYEE on
// behalf of a customer. Status is mutated only through the task service.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       TaskStatus `json:"status"`
	AssignedToID int64      `json:"assigned_to_id"`
	CustomerID   int64      `json:"customer_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TaskActivity is one append-only audit entry for a task: its creation or a
// status change, with the identity that performed it.
type TaskActivity struct {
	ID         int64      `json:"id"`
	TaskID     int64      `json:"task_id"`
	Status     TaskStatus `json:"status"`
	ActorID    int64      `json:"actor_id"`
	ActorEmail string     `json:"actor_email"`
	Note       string     `json:"note,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}
