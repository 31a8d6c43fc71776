package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/markeddown"
)

// CacheKeyPrefix namespaces conversion results in a shared cache.
const CacheKeyPrefix = "marked-down:"

// CacheKey returns the cache key for a conversion. A caller-supplied key
// wins; otherwise the key is a hash of the HTML.
func CacheKey(html, cacheKey string) string {
	if cacheKey != "" {
		return CacheKeyPrefix + cacheKey
	}
	return CacheKeyPrefix + strconv.FormatUint(xxhash.Sum64String(html), 16)
}

// Ensure CachingService implements markeddown.MarkdownService at compile time.
var _ markeddown.MarkdownService = (*CachingService)(nil)

// CachingService serves conversions from a cache, falling back to the
// wrapped service on a miss. Cache failures are logged and never fail a
// conversion.
type CachingService struct {
	Service markeddown.MarkdownService
	Cache   markeddown.Cache

	// TTL is how long results are kept. Zero uses markeddown.DefaultCacheTTL.
	TTL time.Duration

	Logger *slog.Logger
}

// NewCachingService wraps service with cache.
func NewCachingService(service markeddown.MarkdownService, cache markeddown.Cache, logger *slog.Logger) *CachingService {
	return &CachingService{Service: service, Cache: cache, Logger: logger}
}

// ConvertDocument implements markeddown.MarkdownService.
func (s *CachingService) ConvertDocument(ctx context.Context, html, cacheKey, contextID string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	logger := s.logger()
	key := CacheKey(html, cacheKey)

	cached, err := s.Cache.Get(ctx, key)
	switch {
	case err == nil:
		logger.Debug("cache hit", "key", key)
		return cached, nil
	case markeddown.ErrorCode(err) != markeddown.ENOTFOUND:
		logger.Warn("cache read failed", "key", key, "error", err)
	}

	md, err := s.Service.ConvertDocument(ctx, html, cacheKey, contextID)
	if err != nil {
		return "", err
	}

	if err := s.Cache.Set(ctx, key, md, s.ttl()); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
	return md, nil
}

func (s *CachingService) ttl() time.Duration {
	if s.TTL == 0 {
		return markeddown.DefaultCacheTTL
	}
	return s.TTL
}

func (s *CachingService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
