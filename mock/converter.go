package mock

import "github.com/fwojciec/markeddown"

var _ markeddown.Converter = (*Converter)(nil)

// Converter is a mock implementation of markeddown.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
