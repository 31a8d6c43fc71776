package markeddown

import (
	"html"
	"regexp"
	"strings"
)

// Pass is one named, pure text rewrite step of a normalization pipeline.
// Fn must be safe for concurrent use and must be a fixed point on its own
// output.
type Pass struct {
	Name string
	Fn   func(string) string
}

// Pipeline is an ordered list of passes. Each pass receives the output of
// the previous one.
type Pipeline []Pass

// Run applies every pass in order.
func (p Pipeline) Run(s string) string {
	for _, pass := range p {
		s = pass.Fn(s)
	}
	return s
}

// Names returns the pass names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, pass := range p {
		names[i] = pass.Name
	}
	return names
}

// CorePipeline returns the six passes every conversion goes through.
func CorePipeline() Pipeline {
	return Pipeline{
		{Name: "line-endings", Fn: NormalizeLineEndings},
		{Name: "entities", Fn: DecodeEntities},
		{Name: "image-spacing", Fn: RepairImageSpacing},
		{Name: "blank-lines", Fn: CollapseBlankLines},
		{Name: "empty-headings", Fn: RemoveEmptyHeadings},
		{Name: "trim", Fn: TrimDocument},
	}
}

// RepairPipeline returns the core passes with the link and image repair
// passes layered in after spacing repair. Use it when the converter output
// is known to contain adjacency artifacts.
//
// Empty headings are removed before the repairs as well, so a deleted
// heading line can never bring two repairable tokens next to each other
// after the repairs have run.
func RepairPipeline() Pipeline {
	return Pipeline{
		{Name: "line-endings", Fn: NormalizeLineEndings},
		{Name: "entities", Fn: DecodeEntities},
		{Name: "image-spacing", Fn: RepairImageSpacing},
		{Name: "empty-headings", Fn: RemoveEmptyHeadings},
		{Name: "image-caption-links", Fn: SplitImageCaptionLinks},
		{Name: "link-headings", Fn: RepairBrokenLinkHeadings},
		{Name: "duplicate-links", Fn: CollapseDuplicateLinks},
		{Name: "link-image-adjacency", Fn: RepairLinkImageAdjacency},
		{Name: "blank-lines", Fn: CollapseBlankLines},
		{Name: "empty-headings", Fn: RemoveEmptyHeadings},
		{Name: "trim", Fn: TrimDocument},
	}
}

// Normalize cleans raw converter output with the core pipeline.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	return CorePipeline().Run(raw)
}

// maxRepairRounds bounds how often NormalizeWithRepairs reruns the repair
// pipeline while waiting for its output to settle.
const maxRepairRounds = 4

// NormalizeWithRepairs cleans raw converter output with the repair pipeline.
// A repair can expose work for an earlier pass (an image split off a stray
// "#" leaves an empty heading behind), so the pipeline is rerun until its
// output stops changing.
// NormalizeWithRepairs(NormalizeWithRepairs(s)) == NormalizeWithRepairs(s).
func NormalizeWithRepairs(raw string) string {
	p := RepairPipeline()
	s := p.Run(raw)
	for range maxRepairRounds - 1 {
		next := p.Run(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// lineSpace is the whitespace allowed inside a line. It matches the set
// trimmed by TrimDocument minus line breaks.
const lineSpace = " \t\f\v"

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(s string) string {
	return lineEndingReplacer.Replace(s)
}

// DecodeEntities replaces HTML character references with the characters
// they stand for. Decoding repeats until nothing changes, so double-escaped
// input such as "&amp;lt;" ends up as "<". Line breaks produced by decoding
// are normalized to LF.
func DecodeEntities(s string) string {
	for strings.Contains(s, "&") {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	return NormalizeLineEndings(s)
}

var (
	imageBangSpaceRe = regexp.MustCompile(`![ \t]+\[`)
	openBracketRe    = regexp.MustCompile(`\[\s+`)
	closeBracketRe   = regexp.MustCompile(`\s+\]`)
)

// RepairImageSpacing joins "! [" into "![" and trims whitespace just inside
// square brackets. The image marker is only joined across spaces and tabs;
// a "!" ending a line is punctuation.
func RepairImageSpacing(s string) string {
	s = imageBangSpaceRe.ReplaceAllString(s, "![")
	s = openBracketRe.ReplaceAllString(s, "[")
	s = closeBracketRe.ReplaceAllString(s, "]")
	return s
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// CollapseBlankLines reduces runs of three or more newlines to exactly two.
func CollapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

var emptyHeadingRe = regexp.MustCompile(`^[ \t\f\v]*#{1,6}[ \t\f\v]*$`)

// RemoveEmptyHeadings deletes lines holding nothing but a heading marker.
// Blank lines left adjacent by a deletion are collapsed so the result never
// holds more than one consecutive blank line where the input did not.
func RemoveEmptyHeadings(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if emptyHeadingRe.MatchString(line) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return s
	}
	return CollapseBlankLines(strings.Join(kept, "\n"))
}

// TrimDocument removes leading and trailing whitespace from the document.
func TrimDocument(s string) string {
	return strings.Trim(s, lineSpace+"\r\n")
}
