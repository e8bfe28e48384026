package strategy

import (
	"context"
	"hotel-booking/pkg/broker"
)

const (
	TASK_EXIT_CODE_SUCCESS         = 200
	TASK_EXIT_CODE_FAILED          = 500
	TASK_EXIT_CODE_SKIPPED         = 204
	TASK_EXIT_CODE_PARTIAL_SUCCESS = 206
)

type TaskResult struct {
	ExitCode int32  `json:"exit_code"`
	Output   string `json:"output"`
}

// TaskStrategy executes one named task taken off the queue.
type TaskStrategy interface {
	Execute(ctx context.Context, msg broker.Message) (TaskResult, error)
	Name() string
}

// Registry maps task identifiers to their strategies.
type Registry map[string]TaskStrategy

func NewRegistry(strategies ...TaskStrategy) Registry {
	r := make(Registry, len(strategies))
	for _, s := range strategies {
		r[s.Name()] = s
	}
	return r
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}
