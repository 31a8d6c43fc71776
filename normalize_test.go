package markeddown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/markeddown"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, markeddown.Normalize(""))
		assert.Empty(t, markeddown.Normalize(" \n\r\n\t "))
	})

	t.Run("converts line endings to LF", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a\nb\nc", markeddown.Normalize("a\r\nb\rc"))
	})

	t.Run("decodes entities", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Tom & Jerry <3", markeddown.Normalize("Tom &amp; Jerry &lt;3"))
	})

	t.Run("decodes double-escaped entities", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "<b>", markeddown.Normalize("&amp;lt;b&amp;gt;"))
	})

	t.Run("normalizes line breaks produced by decoding", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a\n\nb", markeddown.Normalize("a&#13;&#10;&#13;&#10;b"))
	})

	t.Run("joins image marker and bracket", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "![alt](/x.png)", markeddown.Normalize("! [alt](/x.png)"))
	})

	t.Run("keeps exclamation ending a line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Wow!\n[link](/x)", markeddown.Normalize("Wow!\n[link](/x)"))
	})

	t.Run("trims whitespace inside brackets", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "[text](/x)", markeddown.Normalize("[  text\n](/x)"))
	})

	t.Run("collapses blank line runs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a\n\nb", markeddown.Normalize("a\n\n\n\n\nb"))
	})

	t.Run("removes empty headings", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a\n\nb", markeddown.Normalize("a\n\n##\n\nb"))
		assert.Equal(t, "a\n\nb", markeddown.Normalize("a\n\n  ###  \n\n\n\nb"))
	})

	t.Run("keeps headings with text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "# Title\n\nBody", markeddown.Normalize("# Title\n\nBody"))
	})

	t.Run("trims document", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "text", markeddown.Normalize("\n\n  text \n\n"))
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"# Title\r\n\r\n\r\n\r\nBody &amp;amp; more",
		"!\n#\n[x](y)",
		"a\n#\n\n\n#\nb",
		"[ \n ## \n ]",
		"&#13;&#13;&#10;#&#10;",
		"! [a](b) ! \t[c](d)",
		"\v#\nx",
		"text\n\n\n\n##   \n\n\n\n![ img ](/a.png)\n",
		"[Some text\n\n## Heading\nmore](http://x)",
		"[Home](/) [Home](/)",
		"lt; b![a](u)#\n \n![a](u)",
		"[[## H## Hb\n]([t](u)",
		"![a](u)##\n\t\n![b](v)",
	}

	for _, in := range inputs {
		once := markeddown.Normalize(in)
		assert.Equal(t, once, markeddown.Normalize(once), "input %q", in)

		repaired := markeddown.NormalizeWithRepairs(in)
		assert.Equal(t, repaired, markeddown.NormalizeWithRepairs(repaired), "input %q", in)
	}
}

func TestNormalize_OutputContract(t *testing.T) {
	t.Parallel()

	out := markeddown.Normalize("\r\n# \r\n\r\n\r\n\r\ntext\r\n\r\n\r\n##\r\n")

	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\n\n\n")
	assert.Equal(t, strings.TrimSpace(out), out)
	assert.Equal(t, "text", out)
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p := markeddown.Pipeline{
		{Name: "upper", Fn: strings.ToUpper},
		{Name: "suffix", Fn: func(s string) string { return s + "!" }},
	}

	assert.Equal(t, "HI!", p.Run("hi"))
	assert.Equal(t, []string{"upper", "suffix"}, p.Names())
}

func TestCorePipeline_Order(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"line-endings",
		"entities",
		"image-spacing",
		"blank-lines",
		"empty-headings",
		"trim",
	}, markeddown.CorePipeline().Names())
}
