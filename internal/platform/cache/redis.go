// Package cache opens the Redis connection that backs visitor sessions.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PingTimeout bounds the connectivity check made by New.
const PingTimeout = 5 * time.Second

// Options configures the session store connection. Zero durations and pool
// size fall back to the go-redis defaults.
type Options struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// New connects to Redis and pings it. The client is closed again if the ping
// fails.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("apollo/cache: redis address required")
	}
	if opts.DB < 0 {
		return nil, fmt.Errorf("apollo/cache: invalid redis db %d", opts.DB)
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("apollo/cache: ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
