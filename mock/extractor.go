package mock

import "github.com/fwojciec/markeddown"

var _ markeddown.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of markeddown.Extractor.
type Extractor struct {
	ExtractFn func(html string, exclusions []string) (*markeddown.ExtractResult, error)
}

func (e *Extractor) Extract(html string, exclusions []string) (*markeddown.ExtractResult, error) {
	return e.ExtractFn(html, exclusions)
}
