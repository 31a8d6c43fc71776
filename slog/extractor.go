package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/markeddown"
)

// Ensure LoggingExtractor implements markeddown.Extractor.
var _ markeddown.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   markeddown.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next markeddown.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs which content root was chosen and delegates to the wrapped
// extractor.
func (e *LoggingExtractor) Extract(html string, exclusions []string) (result *markeddown.ExtractResult, err error) {
	defer func(begin time.Time) {
		var selector string
		var contentBytes int
		if result != nil {
			selector = result.Selector
			contentBytes = len(result.ContentHTML)
		}
		e.logger.Debug("extract",
			"selector", selector,
			"exclusions", len(exclusions),
			"htmlBytes", len(html),
			"contentBytes", contentBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, exclusions)
}
