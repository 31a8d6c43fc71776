package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/markeddown"
)

// Ensure Converter implements markeddown.Converter at compile time.
var _ markeddown.Converter = (*Converter)(nil)

// RemovedTags are dropped by the engine together with their content, even
// when an extractor let them through.
var RemovedTags = []string{
	"script", "style", "noscript", "iframe", "canvas", "svg",
	"map", "area", "head", "meta", "link",
}

// Converter wraps html-to-markdown to convert HTML to Markdown.
// Output uses ATX headings, "**" for strong and "_" for emphasis, with
// tables and strikethrough enabled.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("_"),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	for _, tag := range RemovedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", markeddown.Errorf(markeddown.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
