package markeddown

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// The output is raw engine output; it still needs normalization.
	Convert(html string) (string, error)
}
