// Package pipeline glues content selection, conversion and normalization
// into a markeddown.MarkdownService.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/markeddown"
)

// Ensure Service implements markeddown.MarkdownService at compile time.
var _ markeddown.MarkdownService = (*Service)(nil)

// Service converts HTML documents to normalized Markdown.
//
// Extraction, exclusion and normalization never fail a conversion: problems
// there are logged and the conversion carries on with what it has. Only a
// Converter failure is returned, as ECONVERT.
type Service struct {
	Extractor markeddown.Extractor
	Converter markeddown.Converter

	// Config supplies exclusion rules. Nil means no configured exclusions.
	Config markeddown.ConfigLoader

	// Repair enables the link and image repair passes.
	Repair bool

	Logger *slog.Logger
}

// NewService creates a Service.
func NewService(extractor markeddown.Extractor, converter markeddown.Converter, config markeddown.ConfigLoader, logger *slog.Logger) *Service {
	return &Service{
		Extractor: extractor,
		Converter: converter,
		Config:    config,
		Logger:    logger,
	}
}

// ConvertDocument implements markeddown.MarkdownService. The cache key is
// ignored; see CachingService.
func (s *Service) ConvertDocument(ctx context.Context, html, _, contextID string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	logger := s.logger()
	exclusions := s.exclusions(contextID)

	content := html
	result, err := s.Extractor.Extract(html, exclusions)
	if err != nil {
		logger.Warn("content extraction failed, converting full document", "error", err)
	} else {
		content = result.ContentHTML
		logger.Debug("content extracted",
			"selector", result.Selector,
			"exclusions", len(exclusions),
			"inputBytes", len(html),
			"contentBytes", len(content))
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	raw, err := s.Converter.Convert(content)
	if err != nil {
		return "", markeddown.Errorf(markeddown.ECONVERT, "failed to convert HTML to Markdown: %v", err)
	}

	if s.Repair {
		return markeddown.NormalizeWithRepairs(raw), nil
	}
	return markeddown.Normalize(raw), nil
}

// exclusions resolves the selectors for contextID. A config that fails to
// load is logged and treated as empty.
func (s *Service) exclusions(contextID string) []string {
	if s.Config == nil {
		return nil
	}
	config, err := s.Config.LoadConfig()
	if err != nil {
		s.logger().Warn("failed to load exclusion config, continuing without it", "error", err)
		return nil
	}
	return config.SelectorsFor(contextID)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
