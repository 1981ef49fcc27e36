// Package cache provides the optional response cache sitting in front of
// the analysis engine. A generated report is cached per query window for a
// short TTL; a miss is not an error.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/common/model"
)

// DefaultTTL bounds how stale a cached report may be.
const DefaultTTL = 5 * time.Minute

// Config holds redis connection configuration. TTL parses from a Go
// duration string in YAML ("5m").
type Config struct {
	Addr     string         `yaml:"addr"`
	Password string         `yaml:"password"`
	DB       int            `yaml:"db"`
	TTL      model.Duration `yaml:"ttl"`
}

// DefaultConfig returns a local redis with the default TTL.
func DefaultConfig() Config {
	return Config{
		Addr: "127.0.0.1:6379",
		TTL:  model.Duration(DefaultTTL),
	}
}

// ReportCache is a byte-level cache for serialized reports.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache connects to redis and verifies the connection.
func NewReportCache(config Config) (*ReportCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	ttl := time.Duration(config.TTL)
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{client: rdb, ttl: ttl}, nil
}

// NewReportCacheWithClient wraps an existing client; used by tests.
func NewReportCacheWithClient(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Get retrieves a cached report. The second return reports whether the key
// was present.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil // cache miss
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return []byte(val), true, nil
}

// Set stores a serialized report under the cache TTL.
func (c *ReportCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
