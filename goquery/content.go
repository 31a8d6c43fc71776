package goquery

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/markeddown"
)

// ContentSelectors lists content-root selectors from most to least
// specific.
var ContentSelectors = []string{
	"main",
	"article",
	"#content",
	"#main-content",
	".content",
	".main-content",
	"body",
}

const bodySelector = "body"

var contentMatchers = func() []Selector {
	sels := make([]Selector, len(ContentSelectors))
	for i, text := range ContentSelectors {
		sels[i] = MustTranslate(text)
	}
	return sels
}()

// Candidate is an element chosen as a content root.
type Candidate struct {
	Node     *goquery.Selection
	Selector string
}

var _ markeddown.Extractor = (*ContentSelector)(nil)

// ContentSelector extracts the main content of a page by looking for
// well-known content roots and stripping boilerplate from them.
type ContentSelector struct {
	Logger *slog.Logger
}

// NewContentSelector creates a ContentSelector. A nil logger discards
// output.
func NewContentSelector(logger *slog.Logger) *ContentSelector {
	return &ContentSelector{Logger: logger}
}

// Extract returns the cleaned HTML of the content roots. If the document
// cannot be parsed or has no content root, the input is returned
// unchanged.
func (c *ContentSelector) Extract(html string, exclusions []string) (*markeddown.ExtractResult, error) {
	logger := c.logger()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("failed to parse HTML, passing input through", "error", err)
		return &markeddown.ExtractResult{ContentHTML: html}, nil
	}

	result := &markeddown.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	candidates := FindCandidates(doc)
	if len(candidates) == 0 {
		logger.Debug("no content root found, passing input through")
		result.ContentHTML = html
		return result, nil
	}

	parts := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		RemoveUnwanted(cand.Node)
		report := ApplyExclusions(cand.Node, exclusions, logger)
		logger.Debug("content root cleaned",
			"selector", cand.Selector,
			"removed", report.Removed,
			"skipped", len(report.Skipped))

		rendered, err := render(cand)
		if err != nil {
			return nil, markeddown.Errorf(markeddown.EINTERNAL, "failed to render %s: %v", cand.Selector, err)
		}
		parts = append(parts, tidyLines(rendered))
	}

	result.ContentHTML = strings.Join(parts, "\n")
	result.Selector = candidates[0].Selector
	return result, nil
}

func (c *ContentSelector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// FindCandidates returns the content roots of doc in priority order. The
// first selector with a match wins; body is only used when nothing more
// specific exists. A match nested inside an earlier candidate is dropped.
func FindCandidates(doc *goquery.Document) []Candidate {
	var candidates []Candidate
	for i, sel := range contentMatchers {
		text := ContentSelectors[i]
		found := false
		doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
			if containedBy(s, candidates) {
				return
			}
			candidates = append(candidates, Candidate{Node: s, Selector: text})
			found = true
		})
		if found && text != bodySelector {
			break
		}
	}
	return candidates
}

func containedBy(s *goquery.Selection, candidates []Candidate) bool {
	n := s.Get(0)
	for _, c := range candidates {
		if c.Node.Get(0) == n || c.Node.Contains(n) {
			return true
		}
	}
	return false
}

// render serializes a candidate. Body contributes its children only.
func render(c Candidate) (string, error) {
	if c.Selector == bodySelector {
		return c.Node.Html()
	}
	return goquery.OuterHtml(c.Node)
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// tidyLines trims every line and collapses runs of blank lines.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(s, "\n\n"))
}
