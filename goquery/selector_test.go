package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/markeddown"
	mdgoquery "github.com/fwojciec/markeddown/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	t.Run("parses supported shapes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			text string
			want mdgoquery.Selector
		}{
			{"#comments", mdgoquery.Selector{Kind: mdgoquery.KindID, Value: "comments"}},
			{".author-bio", mdgoquery.Selector{Kind: mdgoquery.KindClass, Value: "author-bio"}},
			{".w-1.5", mdgoquery.Selector{Kind: mdgoquery.KindClass, Value: "w-1.5"}},
			{"aside", mdgoquery.Selector{Kind: mdgoquery.KindTag, Tag: "aside"}},
			{"DIV", mdgoquery.Selector{Kind: mdgoquery.KindTag, Tag: "div"}},
			{"div#main", mdgoquery.Selector{Kind: mdgoquery.KindTagWithID, Tag: "div", Value: "main"}},
			{"section.promo", mdgoquery.Selector{Kind: mdgoquery.KindTagWithClass, Tag: "section", Value: "promo"}},
			{"  .padded  ", mdgoquery.Selector{Kind: mdgoquery.KindClass, Value: "padded"}},
			{"h2_x-1", mdgoquery.Selector{Kind: mdgoquery.KindTag, Tag: "h2_x-1"}},
			{`#a'b`, mdgoquery.Selector{Kind: mdgoquery.KindID, Value: `a'b`}},
		}
		for _, tt := range tests {
			got, err := mdgoquery.Translate(tt.text)
			require.NoError(t, err, tt.text)
			assert.Equal(t, tt.want, got, tt.text)
		}
	})

	t.Run("rejects unsupported shapes", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"",
			"   ",
			"#",
			".",
			"div#",
			"div.",
			"div[foo=bar]",
			"[data-x]",
			"div > p",
			".a .b",
			"a:hover",
			"div#foo:hover",
			"div.a.b",
			"div#1a",
			"*",
			"1div",
			"#a b",
		} {
			_, err := mdgoquery.Translate(text)
			assert.Equal(t, markeddown.EINVALID, markeddown.ErrorCode(err), "selector %q", text)
		}
	})
}

func TestSelector_Match(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><body>
<div id="foo" class="x bar">one</div>
<div class="barbaz">two</div>
<SECTION class="bar">three</SECTION>
<p id="foo">four</p>
<span id="a'b">five</span>
</body></html>`)

	texts := func(sel mdgoquery.Selector) []string {
		var out []string
		doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
			out = append(out, s.Text())
		})
		return out
	}

	tests := []struct {
		name     string
		selector string
		want     []string
	}{
		{"class matches whole tokens only", ".bar", []string{"one", "three"}},
		{"id matches any tag", "#foo", []string{"one", "four"}},
		{"tag matches case-insensitively", "Section", []string{"three"}},
		{"tag with id requires both", "div#foo", []string{"one"}},
		{"tag with class requires both", "div.bar", []string{"one"}},
		{"id with quote matches literally", `#a'b`, []string{"five"}},
		{"no match", ".missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, texts(mdgoquery.MustTranslate(tt.selector)))
		})
	}
}

func TestSelector_String(t *testing.T) {
	t.Parallel()

	t.Run("renders css", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `[id="x"]`, mdgoquery.MustTranslate("#x").String())
		assert.Equal(t, `[class~="x"]`, mdgoquery.MustTranslate(".x").String())
		assert.Equal(t, `nav`, mdgoquery.MustTranslate("nav").String())
		assert.Equal(t, `div[id="x"]`, mdgoquery.MustTranslate("div#x").String())
		assert.Equal(t, `div[class~="x"]`, mdgoquery.MustTranslate("div.x").String())
	})

	t.Run("escapes quotes and backslashes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `[id="a'b"]`, mdgoquery.MustTranslate(`#a'b`).String())
		assert.Equal(t, `[id="a\"b"]`, mdgoquery.MustTranslate(`#a"b`).String())
		assert.Equal(t, `[class~="a\\b"]`, mdgoquery.MustTranslate(`.a\b`).String())
	})

	t.Run("compiles to an equivalent cascadia selector", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<body>
<div id='a"b' class="x y">q</div>
<div id="a'b">s</div>
<div id="a\b" class="a\b">bs</div>
<span class="x">t</span>
<div id="other" class="xy">o</div>
<div id="a" class="b">injected</div>
</body>`)
		root := doc.Nodes[0]

		for _, text := range []string{
			`#a"b`,
			`#a'b`,
			`#a\b`,
			`.a\b`,
			`#a"],[id="a`,
			".x",
			"div",
			"div.y",
			"div#other",
			"span",
		} {
			sel := mdgoquery.MustTranslate(text)
			compiled, err := cascadia.Compile(sel.String())
			require.NoError(t, err, sel.String())

			assert.Equal(t, sel.MatchAll(root), compiled.MatchAll(root), text)
		}
	})

	t.Run("quoted value cannot widen the match", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<body><div id="a">victim</div></body>`)
		sel := mdgoquery.MustTranslate(`#a"],[id="a`)

		compiled, err := cascadia.Compile(sel.String())
		require.NoError(t, err)

		assert.Empty(t, compiled.MatchAll(doc.Nodes[0]))
		assert.Empty(t, sel.MatchAll(doc.Nodes[0]))
	})
}
