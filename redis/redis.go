package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Connect opens the redis client used by the realtime relay and verifies the
// server is reachable before returning it.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return client, nil
}
