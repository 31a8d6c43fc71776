package mock

import (
	"context"

	"github.com/fwojciec/markeddown"
)

var _ markeddown.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of markeddown.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *markeddown.Page) (string, error)
}

func (w *PageWriter) WritePage(ctx context.Context, page *markeddown.Page) (string, error) {
	return w.WritePageFn(ctx, page)
}
