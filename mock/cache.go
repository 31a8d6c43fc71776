package mock

import (
	"context"
	"time"

	"github.com/fwojciec/markeddown"
)

var _ markeddown.Cache = (*Cache)(nil)

// Cache is a mock implementation of markeddown.Cache.
type Cache struct {
	GetFn   func(ctx context.Context, key string) (string, error)
	SetFn   func(ctx context.Context, key, value string, ttl time.Duration) error
	ClearFn func(ctx context.Context) error
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.SetFn(ctx, key, value, ttl)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.ClearFn(ctx)
}
