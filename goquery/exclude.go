package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/markeddown"
)

// BuiltinExclusions are elements removed from every content candidate
// before configured exclusions apply.
var BuiltinExclusions = []string{
	"nav", "header", "footer", "aside",
	"script", "style", "noscript",
	"iframe", "canvas", "svg",
}

var builtinSelectors = func() []Selector {
	sels := make([]Selector, len(BuiltinExclusions))
	for i, tag := range BuiltinExclusions {
		sels[i] = MustTranslate(tag)
	}
	return sels
}()

// RemoveUnwanted removes the built-in boilerplate elements below root.
func RemoveUnwanted(root *goquery.Selection) {
	for _, sel := range builtinSelectors {
		root.FindMatcher(sel).Remove()
	}
}

// ExclusionReport summarizes one ApplyExclusions call.
type ExclusionReport struct {
	// Applied lists selectors that were evaluated, in input order.
	Applied []string
	// Skipped lists selectors that could not be translated or evaluated.
	Skipped []string
	// Removed counts removed elements, nested matches included.
	Removed int
}

// ApplyExclusions removes every element below root matching one of the
// selectors. Selectors are applied in order. A selector that cannot be
// translated or evaluated is logged and skipped; it never aborts the
// remaining exclusions.
func ApplyExclusions(root *goquery.Selection, selectors []string, logger *slog.Logger) ExclusionReport {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var report ExclusionReport
	for _, text := range selectors {
		sel, err := Translate(text)
		if err != nil {
			logger.Warn("skipping exclusion selector", "selector", text, "error", markeddown.ErrorMessage(err))
			report.Skipped = append(report.Skipped, text)
			continue
		}

		n, err := removeMatches(root, sel)
		if err != nil {
			logger.Warn("exclusion selector failed", "selector", text, "error", markeddown.ErrorMessage(err))
			report.Skipped = append(report.Skipped, text)
			continue
		}
		report.Applied = append(report.Applied, text)
		report.Removed += n
	}
	return report
}

func removeMatches(root *goquery.Selection, sel Selector) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = markeddown.Errorf(markeddown.EINTERNAL, "evaluating %s: %v", sel, r)
		}
	}()

	matches := root.FindMatcher(sel)
	n = matches.Length()
	matches.Remove()
	return n, nil
}

var _ markeddown.Extractor = (*ExclusionFilter)(nil)

// ExclusionFilter applies exclusion selectors to the whole document before
// handing it to an extractor that does not support them.
type ExclusionFilter struct {
	Extractor markeddown.Extractor
	Logger    *slog.Logger
}

// Extract removes excluded elements and delegates to the wrapped extractor.
func (f *ExclusionFilter) Extract(html string, exclusions []string) (*markeddown.ExtractResult, error) {
	if len(exclusions) == 0 {
		return f.Extractor.Extract(html, nil)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, markeddown.Errorf(markeddown.EINVALID, "failed to parse HTML: %v", err)
	}
	ApplyExclusions(doc.Selection, exclusions, f.Logger)

	filtered, err := doc.Html()
	if err != nil {
		return nil, markeddown.Errorf(markeddown.EINTERNAL, "failed to render HTML: %v", err)
	}
	return f.Extractor.Extract(filtered, nil)
}
