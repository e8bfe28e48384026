package redis

import (
	"context"
	"fmt"
	"hotel-booking/config"

	goredis "github.com/go-redis/redis/v8"
)

// NewClient opens a client and pings it once. No retry is attempted, callers
// treat a failure here as fatal at startup.
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}
