package readability

import (
	"strings"

	"github.com/fwojciec/markeddown"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements markeddown.Extractor at compile time.
var _ markeddown.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// It has no support for exclusion selectors; wrap it in
// goquery.ExclusionFilter to apply them.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, exclusions []string) (*markeddown.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, markeddown.Errorf(markeddown.EINVALID, "empty HTML input")
	}
	if len(exclusions) > 0 {
		return nil, markeddown.Errorf(markeddown.EINVALID, "readability extractor does not apply exclusions")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &markeddown.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Selector:    "readability",
	}, nil
}
