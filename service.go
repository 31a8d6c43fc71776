package markeddown

import "context"

// MarkdownService converts full HTML documents to normalized Markdown.
type MarkdownService interface {
	// ConvertDocument converts a full HTML document to Markdown.
	//
	// cacheKey is an opaque identifier for a cache layer wrapping the
	// service; the conversion itself ignores it. contextID names the
	// template or view that produced html and selects scoped exclusions.
	// Both are optional and empty when absent.
	//
	// Empty or whitespace-only html returns an empty string. Apart from
	// context cancellation, the only error surfaced is ECONVERT, when the
	// HTML to Markdown engine fails.
	ConvertDocument(ctx context.Context, html, cacheKey, contextID string) (string, error)
}
