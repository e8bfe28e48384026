package broker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("periodic_task", map[string]int{"days": 1})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "periodic_task", msg.Task)
	assert.JSONEq(t, `{"days":1}`, string(msg.Args))
	assert.False(t, msg.EnqueuedAt.IsZero())

	bare, err := NewMessage("periodic_task", nil)
	require.NoError(t, err)
	assert.Nil(t, bare.Args)
	assert.NotEqual(t, msg.ID, bare.ID)
}

func brokers(t *testing.T) map[string]Broker {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	all := map[string]Broker{
		"memory": NewMemoryBroker(8, 50*time.Millisecond),
		"redis":  NewRedisBroker(client, time.Second),
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestBroker_PublishConsumeFIFO(t *testing.T) {
	ctx := context.Background()
	for name, b := range brokers(t) {
		t.Run(name, func(t *testing.T) {
			first, _ := NewMessage("email.booking_reminder_1day", nil)
			second, _ := NewMessage("periodic_task", nil)

			require.NoError(t, b.Publish(ctx, "tasks", first))
			require.NoError(t, b.Publish(ctx, "tasks", second))

			got, err := b.Consume(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, first.ID, got.ID)
			assert.Equal(t, first.Task, got.Task)

			got, err = b.Consume(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, second.ID, got.ID)
		})
	}
}

func TestMemoryBroker_ConsumeTimesOut(t *testing.T) {
	b := NewMemoryBroker(1, 10*time.Millisecond)
	_, err := b.Consume(context.Background(), "tasks")
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestMemoryBroker_ConsumeCancelled(t *testing.T) {
	b := NewMemoryBroker(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Consume(ctx, "tasks")
	assert.ErrorIs(t, err, context.Canceled)
}
