package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/markeddown"
)

// Ensure LoggingCache implements markeddown.Cache.
var _ markeddown.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with debug logging.
type LoggingCache struct {
	next   markeddown.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next markeddown.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get logs hits and misses.
func (c *LoggingCache) Get(ctx context.Context, key string) (value string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"key", key,
			"hit", err == nil,
			"duration", time.Since(begin),
			"err", errUnlessMiss(err),
		)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Set delegates to the wrapped cache.
func (c *LoggingCache) Set(ctx context.Context, key, value string, ttl time.Duration) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache set",
			"key", key,
			"bytes", len(value),
			"ttl", ttl,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(ctx, key, value, ttl)
}

// Clear delegates to the wrapped cache.
func (c *LoggingCache) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache clear", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return c.next.Clear(ctx)
}

// errUnlessMiss hides the expected not-found error of a cache miss.
func errUnlessMiss(err error) error {
	if markeddown.ErrorCode(err) == markeddown.ENOTFOUND {
		return nil
	}
	return err
}
