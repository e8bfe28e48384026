package broker

import (
	"context"
	"sync"
	"time"
)

// MemoryBroker is an in-process broker. It only connects goroutines of the
// same binary and is meant for TEST mode.
type MemoryBroker struct {
	mu      sync.Mutex
	queues  map[string]chan Message
	size    int
	timeout time.Duration
}

func NewMemoryBroker(size int, consumeTimeout time.Duration) *MemoryBroker {
	if size <= 0 {
		size = 1024
	}
	return &MemoryBroker{
		queues:  make(map[string]chan Message),
		size:    size,
		timeout: consumeTimeout,
	}
}

func (b *MemoryBroker) queue(name string) chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.queues[name]
	if !ok {
		q = make(chan Message, b.size)
		b.queues[name] = q
	}
	return q
}

func (b *MemoryBroker) Publish(ctx context.Context, queue string, msg Message) error {
	select {
	case b.queue(queue) <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryBroker) Consume(ctx context.Context, queue string) (Message, error) {
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case msg := <-b.queue(queue):
		return msg, nil
	case <-timer.C:
		return Message{}, ErrNoMessage
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Len reports how many messages wait in queue.
func (b *MemoryBroker) Len(queue string) int {
	return len(b.queue(queue))
}

func (b *MemoryBroker) Close() error {
	return nil
}
