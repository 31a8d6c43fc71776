package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/markeddown"
	"github.com/fwojciec/markeddown/fs"
	"github.com/fwojciec/markeddown/pipeline"
	"golang.org/x/sync/errgroup"
)

type convertResult struct {
	source   string
	html     string
	markdown string
	cached   bool
	err      error
}

// Run executes the convert command. Sources are converted concurrently and
// reported in argument order; a failing source does not stop the others.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	var stdin string
	for _, src := range c.Sources {
		if src == fs.StdinSource {
			b, err := io.ReadAll(deps.Stdin)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: failed to read stdin: %s\n", err)
				return err
			}
			stdin = string(b)
			break
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]convertResult, len(c.Sources))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, src := range c.Sources {
		g.Go(func() error {
			results[i] = c.convert(gctx, deps, src, stdin)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.source, errorText(r.err))
			continue
		}

		if deps.Verbose {
			if r.cached {
				fmt.Fprintf(deps.Stderr, "%s: %d bytes Markdown from cache\n", r.source, len(r.markdown))
			} else {
				printStats(deps.Stderr, r.source, r.html, r.markdown)
			}
		}

		if deps.Writer != nil {
			path, err := deps.Writer.WritePage(deps.Ctx, &markeddown.Page{
				Source:      r.source,
				Content:     r.markdown,
				ConvertedAt: time.Now(),
			})
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.source, errorText(err))
				continue
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
			continue
		}

		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintln(deps.Stdout, r.markdown)
	}

	if failed > 0 {
		return markeddown.Errorf(markeddown.EINTERNAL, "%d of %d sources failed", failed, len(c.Sources))
	}
	return nil
}

func (c *ConvertCmd) convert(ctx context.Context, deps *Dependencies, source, stdin string) convertResult {
	r := convertResult{source: source}

	var cacheKey string
	switch {
	case source == fs.StdinSource:
		r.html = stdin
	case isURL(source):
		cacheKey = source
		if md, ok := cachedURL(ctx, deps.Cache, source); ok {
			r.markdown = md
			r.cached = true
			return r
		}
		html, err := deps.Fetcher.Fetch(ctx, source)
		if err != nil {
			r.err = err
			return r
		}
		r.html = html
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			r.err = markeddown.Errorf(markeddown.ENOTFOUND, "failed to read file: %v", err)
			return r
		}
		r.html = string(b)
	}

	r.markdown, r.err = deps.Service.ConvertDocument(ctx, r.html, cacheKey, c.Context)
	return r
}

// cachedURL looks up a URL's conversion before it is fetched. The key
// matches the one CachingService stores under for that URL. Cache errors
// count as a miss.
func cachedURL(ctx context.Context, cache markeddown.Cache, source string) (string, bool) {
	if cache == nil {
		return "", false
	}
	md, err := cache.Get(ctx, pipeline.CacheKey("", source))
	if err != nil {
		return "", false
	}
	return md, true
}

// errorText returns the application message of err, or the raw error
// text for non-application errors.
func errorText(err error) string {
	var e *markeddown.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// printStats reports sizes and the Markdown to HTML ratio.
func printStats(w io.Writer, source, html, md string) {
	ratio := 0.0
	if len(html) > 0 {
		ratio = float64(len(md)) / float64(len(html)) * 100
	}
	fmt.Fprintf(w, "%s: %d bytes HTML -> %d bytes Markdown (%.1f%%)\n", source, len(html), len(md), ratio)
}
