package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/metrics"
	"github.com/prysm/crm-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes task activity records to a fixed set of workers using
// consistent hashing on the task id, guaranteeing per-task ordering of the
// activity trail.
type Dispatcher struct {
	workers []chan ports.TaskActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TaskActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TaskActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an activity record to the worker responsible for its task.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(input ports.TaskActivityInput) {
	idx := d.shardIndex(input.TaskID)
	d.workers[idx] <- input
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(taskID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TaskActivityInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, input); err != nil {
				d.log.Error().Err(err).
					Int64("task_id", input.TaskID).
					Int("worker_id", id).
					Msg("activity recording failed")
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
