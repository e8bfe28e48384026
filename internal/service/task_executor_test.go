package service

import (
	"context"
	"errors"
	"hotel-booking/internal/model"
	"hotel-booking/internal/strategy"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name   string
	result strategy.TaskResult
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Execute(ctx context.Context, msg broker.Message) (strategy.TaskResult, error) {
	s.calls++
	return s.result, s.err
}

func TestTaskExecutor_Execute(t *testing.T) {
	tests := []struct {
		name       string
		task       string
		strategy   *stubStrategy
		wantErr    error
		wantStatus model.TaskRunStatus
		wantOutput string
		wantErrMsg string
	}{
		{
			name:       "completed",
			task:       "periodic_task",
			strategy:   &stubStrategy{name: "periodic_task", result: strategy.TaskResult{ExitCode: strategy.TASK_EXIT_CODE_SUCCESS, Output: "ok"}},
			wantStatus: model.StatusCompleted,
			wantOutput: "ok",
		},
		{
			name:       "strategy error",
			task:       "periodic_task",
			strategy:   &stubStrategy{name: "periodic_task", result: strategy.TaskResult{ExitCode: strategy.TASK_EXIT_CODE_FAILED}, err: errors.New("smtp down")},
			wantStatus: model.StatusFailed,
			wantErrMsg: "smtp down",
		},
		{
			name:       "unknown task",
			task:       "email.unknown",
			strategy:   &stubStrategy{name: "periodic_task"},
			wantErr:    ErrTaskNotRegistered,
			wantStatus: model.StatusFailed,
			wantErrMsg: "email.unknown: task not registered",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTaskRunRepo{}
			exec := NewTaskExecutor(logger.NewNop(), repo, strategy.NewRegistry(tt.strategy))

			msg, err := broker.NewMessage(tt.task, nil)
			require.NoError(t, err)

			err = exec.Execute(context.Background(), msg)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}

			require.Len(t, repo.runs, 1)
			assert.Equal(t, model.StatusRunning, repo.runs[0].Status)
			assert.Equal(t, msg.ID, repo.runs[0].TaskID)

			require.Len(t, repo.updates, 1)
			run := repo.updates[0]
			assert.Equal(t, tt.wantStatus, run.Status)
			assert.True(t, run.CompletedAt.Valid)
			assert.Equal(t, tt.wantOutput, run.Output.String)
			assert.Equal(t, tt.wantErrMsg, run.ErrorMessage.String)
		})
	}
}
