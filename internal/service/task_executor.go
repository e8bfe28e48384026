package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/internal/strategy"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/logger"
	"time"
)

var ErrTaskNotRegistered = errors.New("task not registered")

type TaskExecutor interface {
	Execute(ctx context.Context, msg broker.Message) error
}

type taskExecutor struct {
	log         *logger.Logger
	taskRunRepo repository.TaskRunRepository
	strategies  strategy.Registry
	now         func() time.Time
}

func NewTaskExecutor(log *logger.Logger, taskRunRepo repository.TaskRunRepository, strategies strategy.Registry) TaskExecutor {
	return &taskExecutor{
		log:         log,
		taskRunRepo: taskRunRepo,
		strategies:  strategies,
		now:         time.Now,
	}
}

// Execute runs the strategy registered for msg.Task and records the run.
// An unknown task is a configuration error: the run is stored as failed.
func (t *taskExecutor) Execute(ctx context.Context, msg broker.Message) error {
	log := t.log.With(logger.StringField("task", msg.Task), logger.StringField("task_id", msg.ID))
	// Strategies log through ctx and pick up the task fields.
	ctx = logger.NewContext(ctx, log)
	log.InfoContext(ctx, "Processing task")

	run := &model.TaskRun{
		TaskID:    msg.ID,
		TaskName:  msg.Task,
		Status:    model.StatusRunning,
		StartedAt: t.now(),
	}
	if err := t.taskRunRepo.Create(ctx, run); err != nil {
		log.ErrorContext(ctx, "Failed to create task run", logger.ErrorField(err))
		return fmt.Errorf("failed to create task run: %w", err)
	}

	var execErr error
	s, ok := t.strategies[msg.Task]
	if !ok {
		execErr = fmt.Errorf("%s: %w", msg.Task, ErrTaskNotRegistered)
		log.ErrorContextWithAlert(ctx, "Received unregistered task", logger.ErrorField(execErr))
		run.Status = model.StatusFailed
		run.ErrorMessage = sql.NullString{String: execErr.Error(), Valid: true}
	} else {
		result, err := s.Execute(ctx, msg)
		if err != nil {
			execErr = err
			log.ErrorContext(ctx, "Failed to execute task", logger.ErrorField(err))
			run.Status = model.StatusFailed
			run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		} else {
			run.Status = model.StatusCompleted
		}
		run.Output = sql.NullString{String: result.Output, Valid: result.Output != ""}
	}

	run.CompletedAt = sql.NullTime{Time: t.now(), Valid: true}
	// The task context may already be done, the history row is still written.
	if err := t.taskRunRepo.Update(context.WithoutCancel(ctx), run); err != nil {
		log.ErrorContext(ctx, "Failed to update task run", logger.ErrorField(err))
		return errors.Join(execErr, fmt.Errorf("failed to update task run: %w", err))
	}
	return execErr
}
