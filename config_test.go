package markeddown_test

import (
	"testing"

	"github.com/fwojciec/markeddown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionConfig_SelectorsFor(t *testing.T) {
	t.Parallel()

	config := &markeddown.ExclusionConfig{
		GlobalExclusions: []string{".sidebar"},
		TemplateExclusions: []markeddown.ScopedExclusion{
			{Pattern: "blog/_entry", Selectors: []string{"#comments", ".author-bio"}},
			{Pattern: "news/_entry.twig", Selectors: []string{".share-buttons"}},
		},
	}

	t.Run("returns only globals without context", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar"}, config.SelectorsFor(""))
	})

	t.Run("matches exact context", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar", "#comments", ".author-bio"}, config.SelectorsFor("blog/_entry"))
	})

	t.Run("strips template suffix from context", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar", "#comments", ".author-bio"}, config.SelectorsFor("blog/_entry.twig"))
	})

	t.Run("strips template suffix from pattern", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar", ".share-buttons"}, config.SelectorsFor("news/_entry"))
	})

	t.Run("matches path-segment suffix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar", "#comments", ".author-bio"}, config.SelectorsFor("site/blog/_entry"))
	})

	t.Run("matches substring", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar", "#comments", ".author-bio"}, config.SelectorsFor("site/blog/_entry.ext"))
	})

	t.Run("does not match unrelated context", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{".sidebar"}, config.SelectorsFor("pages/about"))
	})

	t.Run("unions every matching pattern in order", func(t *testing.T) {
		t.Parallel()

		cfg := &markeddown.ExclusionConfig{
			TemplateExclusions: []markeddown.ScopedExclusion{
				{Pattern: "_entry", Selectors: []string{".a"}},
				{Pattern: "blog/_entry", Selectors: []string{".b"}},
				{Pattern: "news", Selectors: []string{".c"}},
			},
		}

		assert.Equal(t, []string{".a", ".b"}, cfg.SelectorsFor("blog/_entry"))
	})

	t.Run("does not mutate globals", func(t *testing.T) {
		t.Parallel()

		cfg := &markeddown.ExclusionConfig{
			GlobalExclusions: make([]string, 1, 4),
			TemplateExclusions: []markeddown.ScopedExclusion{
				{Pattern: "blog", Selectors: []string{".x"}},
			},
		}
		cfg.GlobalExclusions[0] = ".g"

		got := cfg.SelectorsFor("blog")
		got[0] = ".changed"

		assert.Equal(t, []string{".g"}, cfg.GlobalExclusions)
	})

	t.Run("nil config yields nothing", func(t *testing.T) {
		t.Parallel()

		var cfg *markeddown.ExclusionConfig
		assert.Nil(t, cfg.SelectorsFor("blog/_entry"))
	})

	t.Run("custom suffixes replace defaults", func(t *testing.T) {
		t.Parallel()

		cfg := &markeddown.ExclusionConfig{
			TemplateExclusions: []markeddown.ScopedExclusion{
				{Pattern: "page.gohtml", Selectors: []string{".x"}},
			},
			TemplateSuffixes: []string{".gohtml"},
		}

		assert.Equal(t, []string{".x"}, cfg.SelectorsFor("page"))
	})
}

func TestExclusionConfig_ScopedPatternExamples(t *testing.T) {
	t.Parallel()

	config := &markeddown.ExclusionConfig{
		TemplateExclusions: []markeddown.ScopedExclusion{
			{Pattern: "blog/_entry", Selectors: []string{".author-bio"}},
		},
	}

	assert.Equal(t, []string{".author-bio"}, config.SelectorsFor("blog/_entry"))
	assert.Equal(t, []string{".author-bio"}, config.SelectorsFor("site/blog/_entry.ext"))
	assert.Empty(t, config.SelectorsFor("news/_entry"))
}

func TestMatchContext(t *testing.T) {
	t.Parallel()

	assert.True(t, markeddown.MatchContext("blog/_entry", "blog/_entry"))
	assert.True(t, markeddown.MatchContext("site/blog/_entry", "blog/_entry"))
	assert.True(t, markeddown.MatchContext("blog/_entry_list", "_entry"))
	assert.False(t, markeddown.MatchContext("news/_entry", "blog/_entry"))
	assert.False(t, markeddown.MatchContext("anything", ""))
}

func TestTrimTemplateSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "blog/_entry", markeddown.TrimTemplateSuffix("blog/_entry.twig", markeddown.DefaultTemplateSuffixes))
	assert.Equal(t, "blog/_entry.html", markeddown.TrimTemplateSuffix("blog/_entry.html", markeddown.DefaultTemplateSuffixes))
	assert.Equal(t, "blog/_entry", markeddown.TrimTemplateSuffix("blog/_entry", nil))
}

func TestStaticConfig_LoadConfig(t *testing.T) {
	t.Parallel()

	cfg := &markeddown.ExclusionConfig{GlobalExclusions: []string{"#ads"}}

	got, err := markeddown.StaticConfig{Config: cfg}.LoadConfig()

	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
