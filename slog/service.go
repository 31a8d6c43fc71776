package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/markeddown"
)

// Ensure LoggingService implements markeddown.MarkdownService.
var _ markeddown.MarkdownService = (*LoggingService)(nil)

// LoggingService wraps a MarkdownService with logging.
type LoggingService struct {
	next   markeddown.MarkdownService
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next markeddown.MarkdownService, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// ConvertDocument logs the conversion and its compression ratio, then
// returns the wrapped service's result.
func (s *LoggingService) ConvertDocument(ctx context.Context, html, cacheKey, contextID string) (md string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"context", contextID,
			"cacheKey", cacheKey,
			"htmlBytes", len(html),
			"markdownBytes", len(md),
			"duration", time.Since(begin),
		}
		if len(html) > 0 {
			attrs = append(attrs, "ratio", float64(len(md))/float64(len(html)))
		}
		if err != nil {
			s.logger.Error("convert document", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("convert document", attrs...)
	}(time.Now())
	return s.next.ConvertDocument(ctx, html, cacheKey, contextID)
}
