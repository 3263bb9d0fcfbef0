package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// RedisClient wraps the Redis connection used as the parameter store for
// knowledge-base provisioning identifiers.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// PutParameter stores a named parameter value
func (r *RedisClient) PutParameter(ctx context.Context, name, value string) error {
	if err := r.client.Set(ctx, name, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put parameter %s: %w", name, err)
	}
	return nil
}

// GetParameter reads a named parameter value. Returns an error when the
// parameter does not exist.
func (r *RedisClient) GetParameter(ctx context.Context, name string) (string, error) {
	value, err := r.client.Get(ctx, name).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("parameter %s not found", name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}
	return value, nil
}

// DeleteParameter removes a named parameter
func (r *RedisClient) DeleteParameter(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, name).Err(); err != nil {
		return fmt.Errorf("failed to delete parameter %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
