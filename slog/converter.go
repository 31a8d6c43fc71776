package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/markeddown"
)

// Ensure LoggingConverter implements markeddown.Converter.
var _ markeddown.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   markeddown.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next markeddown.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert logs input and output sizes and delegates to the wrapped converter.
func (c *LoggingConverter) Convert(html string) (md string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"htmlBytes", len(html),
			"markdownBytes", len(md),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
