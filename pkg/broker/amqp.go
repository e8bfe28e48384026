package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPBroker publishes to durable queues on the default exchange. Messages
// are acked as soon as they are received, a task that later fails is not
// redelivered.
type AMQPBroker struct {
	conn    *amqp.Connection
	timeout time.Duration

	mu         sync.Mutex
	channel    *amqp.Channel
	declared   map[string]bool
	deliveries map[string]<-chan amqp.Delivery
}

func NewAMQPBroker(url string, consumeTimeout time.Duration) (*AMQPBroker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &AMQPBroker{
		conn:       conn,
		channel:    ch,
		timeout:    consumeTimeout,
		declared:   make(map[string]bool),
		deliveries: make(map[string]<-chan amqp.Delivery),
	}, nil
}

func (b *AMQPBroker) declare(queue string) error {
	if b.declared[queue] {
		return nil
	}
	if _, err := b.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	b.declared[queue] = true
	return nil
}

func (b *AMQPBroker) Publish(ctx context.Context, queue string, msg Message) error {
	raw, err := encode(msg)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.declare(queue); err != nil {
		return err
	}
	err = b.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Task,
		Timestamp:    msg.EnqueuedAt,
		Body:         raw,
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.Task, queue, err)
	}
	return nil
}

func (b *AMQPBroker) subscribe(queue string) (<-chan amqp.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d, ok := b.deliveries[queue]; ok {
		return d, nil
	}
	if err := b.declare(queue); err != nil {
		return nil, err
	}
	d, err := b.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	b.deliveries[queue] = d
	return d, nil
}

func (b *AMQPBroker) Consume(ctx context.Context, queue string) (Message, error) {
	deliveries, err := b.subscribe(queue)
	if err != nil {
		return Message{}, err
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case d, ok := <-deliveries:
		if !ok {
			return Message{}, fmt.Errorf("delivery channel for %s closed", queue)
		}
		msg, err := decode(d.Body)
		if err != nil {
			_ = d.Nack(false, false)
			return Message{}, err
		}
		if err := d.Ack(false); err != nil {
			return Message{}, fmt.Errorf("ack %s: %w", msg.ID, err)
		}
		return msg, nil
	case <-timer.C:
		return Message{}, ErrNoMessage
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (b *AMQPBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.channel != nil {
		_ = b.channel.Close()
	}
	return b.conn.Close()
}
