package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// RedisBroker keeps one redis list per queue, LPUSH on publish and BRPOP on
// consume, so messages are delivered in FIFO order.
type RedisBroker struct {
	client  *goredis.Client
	timeout time.Duration
}

func NewRedisBroker(client *goredis.Client, consumeTimeout time.Duration) *RedisBroker {
	return &RedisBroker{client: client, timeout: consumeTimeout}
}

func (b *RedisBroker) Publish(ctx context.Context, queue string, msg Message) error {
	raw, err := encode(msg)
	if err != nil {
		return err
	}
	if err := b.client.LPush(ctx, queue, raw).Err(); err != nil {
		return fmt.Errorf("failed to push %s onto %s: %w", msg.Task, queue, err)
	}
	return nil
}

func (b *RedisBroker) Consume(ctx context.Context, queue string) (Message, error) {
	res, err := b.client.BRPop(ctx, b.timeout, queue).Result()
	if errors.Is(err, goredis.Nil) {
		return Message{}, ErrNoMessage
	}
	if err != nil {
		if ctx.Err() != nil {
			return Message{}, ctx.Err()
		}
		return Message{}, fmt.Errorf("failed to pop from %s: %w", queue, err)
	}
	// res is [queue, payload]
	return decode([]byte(res[1]))
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
