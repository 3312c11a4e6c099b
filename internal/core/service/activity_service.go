package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/metrics"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

type activityService struct {
	activity ports.ActivityRepository
	log      zerolog.Logger
}

// NewActivityService returns the ActivityService that persists task activity
// records delivered by the dispatcher.
func NewActivityService(activity ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{activity: activity, log: log}
}

// Process writes a single activity entry. Failures are reported to the
// caller (the dispatcher worker) for logging; they never reach the request
// that enqueued the record.
func (s *activityService) Process(ctx context.Context, in ports.TaskActivityInput) error {
	entry := &domain.TaskActivity{
		TaskID:     in.TaskID,
		Status:     in.Status,
		ActorID:    in.ActorID,
		ActorEmail: in.ActorEmail,
		Note:       in.Note,
		Timestamp:  in.Timestamp,
	}

	if err := s.activity.Insert(ctx, entry); err != nil {
		return err
	}

	metrics.ActivityRecordedTotal.Inc()
	s.log.Debug().Int64("task_id", in.TaskID).Str("status", string(in.Status)).Msg("activity recorded")
	return nil
}
