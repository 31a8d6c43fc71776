package mock

import (
	"context"

	"github.com/fwojciec/markeddown"
)

var _ markeddown.MarkdownService = (*MarkdownService)(nil)

// MarkdownService is a mock implementation of markeddown.MarkdownService.
type MarkdownService struct {
	ConvertDocumentFn func(ctx context.Context, html, cacheKey, contextID string) (string, error)
}

func (s *MarkdownService) ConvertDocument(ctx context.Context, html, cacheKey, contextID string) (string, error) {
	return s.ConvertDocumentFn(ctx, html, cacheKey, contextID)
}
