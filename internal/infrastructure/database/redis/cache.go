package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Cache is the read-through cache the application layer stores perception
// results in.  Values are JSON; keys are caller-chosen (AtomSense keys by
// molecule content hash plus mode).
type Cache interface {
	// Get unmarshals the cached value into dest.  A miss is an
	// ErrCodeNotFound error.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores the value.  A non-positive ttl selects the default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// GetOrSet returns the cached value or computes it with loader and
	// stores it.  Concurrent callers of the same key share one loader
	// call.  The returned flag is true on a cache hit.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) (bool, error)

	// Ping verifies the backing connection.
	Ping(ctx context.Context) error
}

type cache struct {
	client     *Client
	log        logging.Logger
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

// Option adjusts cache construction.
type Option func(*cache)

// WithPrefix namespaces every key.
func WithPrefix(prefix string) Option {
	return func(c *cache) { c.prefix = prefix }
}

// WithDefaultTTL sets the expiry used when a call passes none.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *cache) { c.defaultTTL = ttl }
}

// NewCache builds a cache over the client.
func NewCache(client *Client, log logging.Logger, opts ...Option) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &cache{
		client:     client,
		log:        log,
		prefix:     "atomsense:",
		defaultTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expiry by up to 10% so a bulk import does not expire as
// one thundering herd.
func (c *cache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return ttl + time.Duration(rand.Int63n(int64(ttl)/10+1))
}

func (c *cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return errors.NotFound("cache miss").WithDetail(key)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCache, "cache get")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "decode cached value")
	}
	return nil
}

func (c *cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode value for cache")
	}
	if err := c.client.rdb.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCache, "cache set")
	}
	return nil
}

func (c *cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.rdb.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCache, "cache delete")
	}
	return nil
}

func (c *cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) (bool, error) {
	if err := c.Get(ctx, key, dest); err == nil {
		return true, nil
	} else if !errors.IsNotFound(err) {
		// A broken cache degrades to computing the value; the error is
		// logged, not surfaced, because the loader is the source of
		// truth.
		c.log.Warn("cache read failed, computing value", logging.String("key", key), logging.Err(err))
	}

	data, err, _ := c.group.Do(key, func() (interface{}, error) {
		val, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode value for cache")
		}
		if err := c.client.rdb.Set(ctx, c.fullKey(key), encoded,
			c.jitterTTL(ttl)).Err(); err != nil {
			c.log.Warn("cache write failed", logging.String("key", key), logging.Err(err))
		}
		return encoded, nil
	})
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data.([]byte), dest); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeSerialization, "decode loaded value")
	}
	return false, nil
}

func (c *cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}
