package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// ErrKeyNotFound is returned when a key does not exist in the cache
var ErrKeyNotFound = errors.New("key not found")

// Config holds Redis connection settings
type Config struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Client wraps a Redis connection. It backs checkout event idempotency
// keys and the token revocation denylist.
type Client struct {
	client *redis.Client
	logger coreport.Logger
}

// NewClient connects to Redis and verifies the connection
func NewClient(cfg *Config, logger coreport.Logger) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", map[string]any{
			"addr":  cfg.Addr,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("Connected to Redis", map[string]any{"addr": cfg.Addr})
	return &Client{client: client, logger: logger}, nil
}

// Get returns the value for a key, or ErrKeyNotFound
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value with an expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// SetNX stores a value only if the key does not already exist.
// Returns false when the key was already present.
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, expiration).Result()
}

// Exists reports whether the key is present
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Del removes a key
func (c *Client) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}
