package markeddown

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as an HTML fragment.
	// Boilerplate and excluded elements have been removed.
	ContentHTML string

	// Selector names the content-root selector that produced ContentHTML.
	// Empty when no content root was found and the input was passed through.
	Selector string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes a full HTML document and returns the main content.
	// Exclusions are selectors whose matches must be removed from the
	// content in addition to the built-in boilerplate elements.
	Extract(html string, exclusions []string) (*ExtractResult, error)
}
