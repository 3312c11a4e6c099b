package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// collectService records processed inputs in arrival order.
type collectService struct {
	mu     sync.Mutex
	inputs []ports.TaskActivityInput
	done   chan struct{}
	want   int
}

func newCollectService(want int) *collectService {
	return &collectService{done: make(chan struct{}), want: want}
}

func (s *collectService) Process(_ context.Context, in ports.TaskActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, in)
	if len(s.inputs) == s.want {
		close(s.done)
	}
	return nil
}

func (s *collectService) wait(t *testing.T) []ports.TaskActivityInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity records")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.TaskActivityInput, len(s.inputs))
	copy(out, s.inputs)
	return out
}

func TestDispatcher_ShardIndexDeterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for taskID := int64(1); taskID <= 100; taskID++ {
		first := d.shardIndex(taskID)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index out of range for task %d: %d", taskID, first)
		}
		if second := d.shardIndex(taskID); second != first {
			t.Fatalf("task %d hashed to %d then %d", taskID, first, second)
		}
	}
}

func TestDispatcher_DeliversAllRecords(t *testing.T) {
	const n = 50
	svc := newCollectService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= n; i++ {
		d.Record(ports.TaskActivityInput{TaskID: i, Status: domain.StatusPending})
	}

	got := svc.wait(t)
	seen := make(map[int64]bool, n)
	for _, in := range got {
		seen[in.TaskID] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct task ids, got %d", n, len(seen))
	}
}

func TestDispatcher_PerTaskOrdering(t *testing.T) {
	const n = 20
	svc := newCollectService(n)
	// A single worker pins every record of a task to one queue even under
	// the default sharding; multiple workers rely on the hash.
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	statuses := []domain.TaskStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted}
	for i := 0; i < n; i++ {
		d.Record(ports.TaskActivityInput{TaskID: 7, Status: statuses[i%len(statuses)], ActorID: int64(i)})
	}

	got := svc.wait(t)
	for i, in := range got {
		if in.ActorID != int64(i) {
			t.Fatalf("records for one task must arrive in order: position %d holds actor %d", i, in.ActorID)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
