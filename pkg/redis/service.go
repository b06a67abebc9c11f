package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds connection settings for the shared Redis instance.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

var ErrKeyNotExist = redis.Nil

// ServiceInterface is the subset of Redis operations the call registry needs.
type ServiceInterface interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key string, value string, ttl time.Duration) error
	DelValue(ctx context.Context, key string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Service wraps a go-redis client behind ServiceInterface.
type Service struct {
	client *redis.Client
}

// NewService connects to Redis and verifies the connection with a ping.
func NewService(cfg *Config) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{client: client}, nil
}

// GetValue gets a value from Redis by key.
func (s *Service) GetValue(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

// SetValue sets a value in Redis with TTL.
func (s *Service) SetValue(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// DelValue deletes a value from Redis by key.
func (s *Service) DelValue(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Keys lists keys matching a pattern.
func (s *Service) Keys(ctx context.Context, pattern string) ([]string, error) {
	return s.client.Keys(ctx, pattern).Result()
}
