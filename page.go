package markeddown

import (
	"context"
	"time"
)

// Page is a converted document ready to be written out.
type Page struct {
	// Source is where the HTML came from: a URL, a file path or "-" for stdin.
	Source string

	// Content is the normalized Markdown.
	Content string

	// ConvertedAt is when the conversion finished. Zero omits it from
	// frontmatter.
	ConvertedAt time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Source == "" {
		return Errorf(EINVALID, "page source required")
	}
	return nil
}

// PageWriter persists converted pages.
type PageWriter interface {
	// WritePage stores the page and returns where it was written.
	WritePage(ctx context.Context, page *Page) (string, error)
}
