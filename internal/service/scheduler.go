package service

import (
	"context"
	"fmt"
	"hotel-booking/internal/schedule"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/logger"
	"sync"
	"time"
)

// SchedulerService is the beat: it decides when each schedule entry is due
// and enqueues one message per fire.
type SchedulerService interface {
	Run(ctx context.Context) error
	Tick(ctx context.Context, now time.Time) []schedule.Entry
	Schedule() *schedule.Table
	NextRuns() map[string]time.Time
}

type schedulerService struct {
	log          *logger.Logger
	table        *schedule.Table
	publisher    broker.Publisher
	queue        string
	pollInterval time.Duration
	loc          *time.Location
	now          func() time.Time

	mu       sync.Mutex
	nextRuns map[string]time.Time
}

func NewSchedulerService(
	log *logger.Logger,
	table *schedule.Table,
	publisher broker.Publisher,
	queue string,
	pollInterval time.Duration,
	loc *time.Location,
) *schedulerService {
	if loc == nil {
		loc = time.UTC
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &schedulerService{
		log:          log,
		table:        table,
		publisher:    publisher,
		queue:        queue,
		pollInterval: pollInterval,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *schedulerService) Schedule() *schedule.Table {
	return s.table
}

// NextRuns is empty until the first Tick.
func (s *schedulerService) NextRuns() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.nextRuns))
	for k, v := range s.nextRuns {
		out[k] = v
	}
	return out
}

func (s *schedulerService) Run(ctx context.Context) error {
	s.log.InfoContext(ctx, "Beat started",
		logger.IntField("entries", s.table.Len()),
		logger.StringField("queue", s.queue),
		logger.StringField("timezone", s.loc.String()),
		logger.Float64Field("poll_interval_seconds", s.pollInterval.Seconds()),
	)
	for _, e := range s.table.Entries() {
		s.log.InfoContext(ctx, "Scheduled entry",
			logger.StringField("name", e.Name),
			logger.StringField("task", e.Task),
			logger.StringField("trigger", e.Trigger.String()),
		)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.Tick(ctx, s.now())
	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Beat stopped")
			return nil
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick enqueues every entry whose next run is at or before now and returns
// the entries that fired. The first Tick only arms the entries. A fire
// missed by more than one period is not caught up: the next run is computed
// from now, not from the missed time.
func (s *schedulerService) Tick(ctx context.Context, now time.Time) []schedule.Entry {
	now = now.In(s.loc)

	s.mu.Lock()
	if s.nextRuns == nil {
		s.nextRuns = make(map[string]time.Time, s.table.Len())
		for _, e := range s.table.Entries() {
			s.nextRuns[e.Name] = e.Trigger.Next(now)
		}
		s.mu.Unlock()
		return nil
	}

	var due []schedule.Entry
	for _, e := range s.table.Entries() {
		if !now.Before(s.nextRuns[e.Name]) {
			due = append(due, e)
			s.nextRuns[e.Name] = e.Trigger.Next(now)
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		if err := s.enqueue(ctx, e); err != nil {
			s.log.ErrorContextWithAlert(ctx, "Failed to enqueue scheduled task",
				logger.ErrorField(err),
				logger.StringField("name", e.Name),
				logger.StringField("task", e.Task),
			)
		}
	}
	return due
}

func (s *schedulerService) enqueue(ctx context.Context, e schedule.Entry) error {
	msg, err := broker.NewMessage(e.Task, nil)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, s.queue, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Task, err)
	}
	s.log.DebugContext(ctx, "Scheduled task enqueued",
		logger.StringField("name", e.Name),
		logger.StringField("task", e.Task),
		logger.StringField("task_id", msg.ID),
	)
	return nil
}
