package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds Redis connection settings
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Client wraps the Redis connection. When disabled (or unreachable at startup)
// every operation degrades to a cache miss instead of an error, so the service
// runs without Redis.
type Client struct {
	rdb     *redis.Client
	logger  *zap.Logger
	enabled bool
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if !cfg.Enabled {
		logger.Info("Redis disabled, caching is a no-op")
		return &Client{logger: logger, enabled: false}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, caching is a no-op",
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			zap.Error(err),
		)
		_ = rdb.Close()
		return &Client{logger: logger, enabled: false}
	}

	logger.Info("Successfully connected to Redis",
		zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("database", cfg.DB),
	)

	return &Client{rdb: rdb, logger: logger, enabled: true}
}

// IsEnabled reports whether a live Redis connection backs this client
func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Close()
}

// Get returns the cached value for key, or ("", false) on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, bool) {
	if !c.enabled {
		return "", false
	}

	value, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Error("Failed to get cache",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return "", false
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return value, true
}

// Set stores value under key for ttl. Failures are logged, not returned;
// the cache is best-effort.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if !c.enabled {
		return
	}

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
		return
	}

	c.logger.Debug("Cache set",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)
}

// Delete removes a cache entry
func (c *Client) Delete(ctx context.Context, key string) {
	if !c.enabled {
		return
	}

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to delete cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
