package service

import (
	"context"
	"errors"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/utils"
	"sync"
	"time"
)

type WorkerService interface {
	Run(ctx context.Context) error
}

type workerService struct {
	log         *logger.Logger
	consumer    broker.Consumer
	executor    TaskExecutor
	queue       string
	taskTimeout time.Duration
	semaphore   chan struct{}
	wg          sync.WaitGroup
}

func NewWorkerService(
	log *logger.Logger,
	consumer broker.Consumer,
	executor TaskExecutor,
	queue string,
	concurrency int,
	taskTimeout time.Duration,
) *workerService {
	if concurrency <= 0 {
		concurrency = 1
	}
	if taskTimeout <= 0 {
		taskTimeout = 5 * time.Minute
	}
	return &workerService{
		log:         log,
		consumer:    consumer,
		executor:    executor,
		queue:       queue,
		taskTimeout: taskTimeout,
		semaphore:   make(chan struct{}, concurrency),
	}
}

// Run consumes until ctx is done, then waits for running tasks to finish.
func (w *workerService) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "Worker started",
		logger.StringField("queue", w.queue),
		logger.IntField("max_concurrency", cap(w.semaphore)),
	)
	defer func() {
		w.wg.Wait()
		w.log.InfoContext(ctx, "Worker stopped")
	}()

	for {
		// Take a slot before consuming so no message sits unprocessed in memory.
		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return nil
		}

		msg, err := w.consumer.Consume(ctx, w.queue)
		if err != nil {
			<-w.semaphore
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, broker.ErrNoMessage) {
				continue
			}
			w.log.ErrorContext(ctx, "Failed to consume task", logger.ErrorField(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		w.log.DebugContext(ctx, "Dispatching task",
			logger.StringField("task", msg.Task),
			logger.StringField("task_id", msg.ID),
			logger.IntField("active_concurrency", len(w.semaphore)),
			logger.IntField("remaining_concurrency", cap(w.semaphore)-len(w.semaphore)),
		)

		w.wg.Add(1)
		utils.GoSafe(w.log, func() {
			defer w.wg.Done()
			defer func() { <-w.semaphore }()

			taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.taskTimeout)
			defer cancel()

			if err := w.executor.Execute(taskCtx, msg); err != nil {
				w.log.WarnContext(taskCtx, "Task finished with error",
					logger.ErrorField(err),
					logger.StringField("task", msg.Task),
					logger.StringField("task_id", msg.ID),
				)
			}
		})
	}
}
