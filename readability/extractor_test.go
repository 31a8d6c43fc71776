package readability_test

import (
	"testing"

	"github.com/fwojciec/markeddown"
	"github.com/fwojciec/markeddown/goquery"
	"github.com/fwojciec/markeddown/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPost = `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Version 2.0</h1>
<p>This release rewrites the storage engine and makes every query faster than before.</p>
<h2>Upgrading</h2>
<p>Back up your data directory before installing the new version of the server.</p>
<ul><li>Stop the service</li><li>Install the package</li></ul>
<div class="share">Share this post on every network</div>
</article>
<aside class="sidebar"><p>Sidebar archive content</p></aside>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract(" \n ", nil)

		assert.Equal(t, markeddown.EINVALID, markeddown.ErrorCode(err))
	})

	t.Run("rejects exclusions", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract(blogPost, []string{".share"})

		assert.Equal(t, markeddown.EINVALID, markeddown.ErrorCode(err))
	})

	t.Run("extracts title and article", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(blogPost, nil)

		require.NoError(t, err)
		assert.Equal(t, "Release Notes", result.Title)
		assert.Equal(t, "readability", result.Selector)
		assert.Contains(t, result.ContentHTML, "rewrites the storage engine")
		assert.Contains(t, result.ContentHTML, "Upgrading")
		assert.Contains(t, result.ContentHTML, "<li")
	})

	t.Run("removes boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(blogPost, nil)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Sidebar archive content")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("applies exclusions through a filter", func(t *testing.T) {
		t.Parallel()

		ext := &goquery.ExclusionFilter{Extractor: readability.NewExtractor()}

		result, err := ext.Extract(blogPost, []string{".share"})

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "rewrites the storage engine")
		assert.NotContains(t, result.ContentHTML, "Share this post")
	})
}
