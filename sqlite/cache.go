package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/markeddown"
)

// Compile-time interface verification.
var _ markeddown.Cache = (*Cache)(nil)

// Cache implements markeddown.Cache using SQLite.
// Expired entries are deleted when read or purged.
type Cache struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCache creates a new Cache.
func NewCache(db *DB) *Cache {
	return &Cache{db: db, Now: time.Now}
}

func (c *Cache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Get returns the value stored under key.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	var value, expiresAt string
	err := c.db.QueryRowContext(ctx, `
		SELECT value, expires_at FROM cache_entries WHERE key = ?
	`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", markeddown.Errorf(markeddown.ENOTFOUND, "cache entry not found")
	}
	if err != nil {
		return "", err
	}

	expires, err := parseTime(expiresAt, "expires_at")
	if err != nil {
		return "", err
	}
	if !expires.IsZero() && !c.now().Before(expires) {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
			return "", err
		}
		return "", markeddown.Errorf(markeddown.ENOTFOUND, "cache entry expired")
	}
	return value, nil
}

// Set stores value under key, replacing any previous entry. A zero ttl
// never expires.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return markeddown.Errorf(markeddown.EINVALID, "cache key required")
	}
	if ttl < 0 {
		return markeddown.Errorf(markeddown.EINVALID, "negative cache ttl")
	}

	now := c.now()
	var expires time.Time
	if ttl > 0 {
		expires = now.Add(ttl)
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`, key, value, formatTime(expires), formatTime(now))
	return err
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	return err
}

// PurgeExpired removes expired entries and returns how many were removed.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM cache_entries WHERE expires_at != '' AND expires_at <= ?
	`, formatTime(c.now()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
