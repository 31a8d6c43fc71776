// Package fs writes converted pages to disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/markeddown"
)

// StdinSource names a page read from standard input.
const StdinSource = "-"

// SourceToPath converts a page source to a relative Markdown file path.
//
//	https://example.com/docs/api/users → docs/api/users.md
//	https://example.com/docs/         → docs/index.md
//	/tmp/pages/about.html             → about.md
//	-                                 → stdin.md
func SourceToPath(source string) (string, error) {
	if source == StdinSource {
		return "stdin.md", nil
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return URLToPath(u)
	}
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) {
		return "", markeddown.Errorf(markeddown.EINVALID, "cannot derive file name from %q", source)
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".md", nil
}

// URLToPath converts a page URL to a relative file path.
func URLToPath(u *url.URL) (string, error) {
	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// page.html → page.md
	if ext := filepath.Ext(path); ext == ".html" || ext == ".htm" {
		path = strings.TrimSuffix(path, ext)
	}
	return path + ".md", nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *markeddown.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.Source)
	if !page.ConvertedAt.IsZero() {
		b.WriteString("\nconverted: ")
		b.WriteString(page.ConvertedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Ensure Writer implements markeddown.PageWriter at compile time.
var _ markeddown.PageWriter = (*Writer)(nil)

// Writer writes pages as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes a page to disk and returns the file path. The file is
// written to a temporary name first and renamed into place.
func (w *Writer) WritePage(ctx context.Context, page *markeddown.Page) (string, error) {
	if err := page.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	relPath, err := SourceToPath(page.Source)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(FormatPage(page)); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
