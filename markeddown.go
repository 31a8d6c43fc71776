// Package markeddown converts full HTML pages into clean, readable Markdown
// for clients that prefer text/markdown over HTML.
//
// Conversion happens in three stages: content selection picks the part of
// the document that carries the page content and strips boilerplate and
// configured exclusions, an external engine maps the cleaned HTML to
// Markdown, and a fixed sequence of normalization passes repairs the
// structural artifacts the engine leaves behind.
//
// This package contains domain types, interfaces and the pure text
// normalization passes, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, htmltomarkdown/, sqlite/).
package markeddown
