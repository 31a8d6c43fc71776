package markeddown

import (
	"context"
	"time"
)

// DefaultCacheTTL is how long a converted page stays cached unless the
// caller configures otherwise.
const DefaultCacheTTL = 24 * time.Hour

// Cache stores converted Markdown by key.
// The conversion core never depends on a Cache; caching wraps a
// MarkdownService from the outside.
type Cache interface {
	// Get returns the cached value for key.
	// Returns ENOTFOUND if the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Clear removes every cached entry.
	Clear(ctx context.Context) error
}
