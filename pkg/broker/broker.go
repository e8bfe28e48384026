// Package broker moves task messages from the beat and the API to workers.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DriverRedis  = "redis"
	DriverAMQP   = "amqp"
	DriverMemory = "memory"
)

// ErrNoMessage is returned by Consume when the wait timed out empty.
var ErrNoMessage = errors.New("no message available")

// Message is a single task invocation.
type Message struct {
	ID         string          `json:"id"`
	Task       string          `json:"task"`
	Args       json.RawMessage `json:"args,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewMessage stamps a fresh id and enqueue time.
func NewMessage(task string, args interface{}) (Message, error) {
	msg := Message{
		ID:         uuid.NewString(),
		Task:       task,
		EnqueuedAt: time.Now().UTC(),
	}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return Message{}, fmt.Errorf("failed to encode args for %s: %w", task, err)
		}
		msg.Args = raw
	}
	return msg, nil
}

type Publisher interface {
	Publish(ctx context.Context, queue string, msg Message) error
}

type Consumer interface {
	// Consume blocks until a message arrives, the wait times out
	// (ErrNoMessage) or ctx is done.
	Consume(ctx context.Context, queue string) (Message, error)
}

type Broker interface {
	Publisher
	Consumer
	Close() error
}

func encode(msg Message) ([]byte, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
	}
	return raw, nil
}

func decode(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	return msg, nil
}
