package strategy

import (
	"context"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"sync"
	"time"
)

const historyPruneEvery = time.Hour

// PeriodicStrategy is the heartbeat task fired on a short interval. When a
// task run repository is given it also prunes old run history, at most once
// per hour.
type PeriodicStrategy struct {
	log         *logger.Logger
	taskRunRepo repository.TaskRunRepository
	retention   time.Duration
	now         func() time.Time

	mu         sync.Mutex
	lastPruned time.Time
}

func NewPeriodicStrategy(log *logger.Logger, taskRunRepo repository.TaskRunRepository, retention time.Duration) *PeriodicStrategy {
	return &PeriodicStrategy{
		log:         log,
		taskRunRepo: taskRunRepo,
		retention:   retention,
		now:         time.Now,
	}
}

func (s *PeriodicStrategy) Name() string {
	return common.TASK_PERIODIC
}

func (s *PeriodicStrategy) Execute(ctx context.Context, msg broker.Message) (TaskResult, error) {
	s.log.InfoContext(ctx, "Periodic task tick",
		logger.StringField("task_id", msg.ID),
		logger.Field("enqueued_at", msg.EnqueuedAt),
	)
	s.pruneHistory(ctx)
	return TaskResult{ExitCode: TASK_EXIT_CODE_SUCCESS, Output: "ok"}, nil
}

func (s *PeriodicStrategy) pruneHistory(ctx context.Context) {
	if s.taskRunRepo == nil || s.retention <= 0 {
		return
	}
	now := s.now()

	s.mu.Lock()
	if !s.lastPruned.IsZero() && now.Sub(s.lastPruned) < historyPruneEvery {
		s.mu.Unlock()
		return
	}
	s.lastPruned = now
	s.mu.Unlock()

	deleted, err := s.taskRunRepo.DeleteOlderThan(ctx, now.Add(-s.retention))
	if err != nil {
		// Heartbeat still succeeds, pruning is retried next hour.
		s.log.WarnContext(ctx, "Failed to prune task run history", logger.ErrorField(err))
		return
	}
	if deleted > 0 {
		s.log.InfoContext(ctx, "Pruned task run history", logger.IntField("deleted", int(deleted)))
	}
}
