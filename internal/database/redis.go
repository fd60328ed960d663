package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients separates the hot session-store connection from the archive
// queue connection, so a slow BLPOP consumer never blocks a chat turn.
type RedisClients struct {
	Sessions *redis.Client
	Queue    *redis.Client
}

func NewRedisClients(redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionClient := redis.NewClient(opt)
	if err := sessionClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis (sessions): %w", err)
	}

	queueOpt := *opt
	queueClient := redis.NewClient(&queueOpt)
	if err := queueClient.Ping(ctx).Err(); err != nil {
		sessionClient.Close()
		return nil, fmt.Errorf("failed to ping Redis (queue): %w", err)
	}

	return &RedisClients{
		Sessions: sessionClient,
		Queue:    queueClient,
	}, nil
}

func (r *RedisClients) Close() {
	r.Sessions.Close()
	r.Queue.Close()
}
