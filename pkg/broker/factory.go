package broker

import (
	"context"
	"fmt"

	"hotel-booking/config"
	"hotel-booking/pkg/redis"
)

// New opens the broker selected by cfg.Broker.Driver.
func New(ctx context.Context, cfg *config.Config) (Broker, error) {
	switch cfg.Broker.Driver {
	case DriverRedis, "":
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisBroker(client, cfg.Broker.ConsumeTimeout), nil
	case DriverAMQP:
		return NewAMQPBroker(cfg.Broker.AMQPURL, cfg.Broker.ConsumeTimeout)
	case DriverMemory:
		return NewMemoryBroker(0, cfg.Broker.ConsumeTimeout), nil
	default:
		return nil, fmt.Errorf("unknown broker driver %q", cfg.Broker.Driver)
	}
}
