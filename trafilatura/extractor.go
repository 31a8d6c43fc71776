package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/markeddown"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements markeddown.Extractor at compile time.
var _ markeddown.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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
		return nil, markeddown.Errorf(markeddown.EINVALID, "trafilatura extractor does not apply exclusions")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &markeddown.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Selector:    "trafilatura",
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
