// Package redisstore keeps best scores in Redis for deployments that run
// several server instances.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it. It returns nil and no error when addr
// is empty so callers can treat Redis as optional.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
