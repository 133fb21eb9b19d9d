// Package redis provides the perception result cache.  Classification is
// deterministic, so a molecule's result can be served by content hash
// indefinitely; the cache exists to skip re-parsing and re-classifying the
// same structures on hot API paths.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Client wraps the go-redis client with the project's config and error
// conventions.
type Client struct {
	rdb redis.UniversalClient
	log logging.Logger
}

// NewClient connects and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, log logging.Logger) (*Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.InvalidParam("redis address is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCache, "connect to redis")
	}

	log.Info("redis connected", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, log: log}, nil
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCache, "redis ping")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Raw exposes the underlying client for callers that need a command this
// wrapper does not model.
func (c *Client) Raw() redis.UniversalClient {
	return c.rdb
}
