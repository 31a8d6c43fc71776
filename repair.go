package markeddown

import (
	"regexp"
	"strings"
)

var (
	// linkRe matches an inline link or image. Link text may span lines but
	// never holds brackets; the destination stops at the first ")".
	linkRe = regexp.MustCompile(`(!?)\[([^\[\]]*)\]\(([^)\n]*)\)`)

	imageRe = regexp.MustCompile(`!\[[^\[\]]*\]\([^)\n]*\)`)

	headingLineRe   = regexp.MustCompile(`^[ \t]*(#{1,6}[ \t]+\S.*)$`)
	headingMarkerRe = regexp.MustCompile(`^#{1,6}\s+`)

	imageCaptionLinkRe = regexp.MustCompile(`\[\s*!\[([^\[\]]*)\]\(([^)\n]*)\)\s*([^\[\]]*)\]\(([^)\n]*)\)`)

	linkThenHeadingRe = regexp.MustCompile(`(\]\([^)\n]*\))[ \t]+(#{1,6}[ \t]+\S)`)
)

// replaceSubmatchFunc is regexp.ReplaceAllStringFunc with access to the
// capture groups of each match.
func replaceSubmatchFunc(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = s[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RepairBrokenLinkHeadings moves heading lines out of link text. Converting
// an anchor that wraps block content leaves headings inside the brackets;
// each such heading becomes its own block ahead of the link and the rest of
// the text is joined into a single line. A link left with no text uses its
// destination as text.
func RepairBrokenLinkHeadings(s string) string {
	matches := linkRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[3] > m[2] {
			continue // image
		}
		text, url := s[m[4]:m[5]], s[m[6]:m[7]]

		var headings, rest []string
		for _, line := range strings.Split(text, "\n") {
			if hm := headingLineRe.FindStringSubmatch(line); hm != nil {
				headings = append(headings, strings.TrimRight(hm[1], " \t"))
				continue
			}
			rest = append(rest, line)
		}
		if len(headings) == 0 {
			continue
		}

		label := collapseSpace(strings.Join(rest, " "))
		if label == "" {
			label = url
		}

		b.WriteString(s[last:m[0]])
		if lineStart := strings.LastIndexByte(s[:m[0]], '\n') + 1; strings.TrimSpace(s[lineStart:m[0]]) != "" {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(headings, "\n\n"))
		b.WriteString("\n\n[")
		b.WriteString(label)
		b.WriteString("](")
		b.WriteString(url)
		b.WriteString(")")
		last = m[1]
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// CollapseDuplicateLinks drops a link that repeats the previous link's text
// and destination when only whitespace separates the two. Images are left
// alone and break a run of duplicates.
func CollapseDuplicateLinks(s string) string {
	matches := linkRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) < 2 {
		return s
	}

	type link struct {
		text, url string
		end       int
	}

	var (
		b    strings.Builder
		prev *link
		last int
	)
	for _, m := range matches {
		if m[3] > m[2] {
			prev = nil
			continue
		}
		cur := &link{text: s[m[4]:m[5]], url: s[m[6]:m[7]], end: m[1]}
		if prev != nil && cur.text == prev.text && cur.url == prev.url && strings.TrimSpace(s[prev.end:m[0]]) == "" {
			b.WriteString(s[last:prev.end])
			last = m[1]
		}
		prev = cur
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// SplitImageCaptionLinks rewrites a link whose text is an image followed by
// a caption into the image followed by a separate caption link. A caption
// that is empty after collapsing whitespace leaves just the image.
func SplitImageCaptionLinks(s string) string {
	return replaceSubmatchFunc(imageCaptionLinkRe, s, func(g []string) string {
		img := "![" + g[1] + "](" + g[2] + ")"
		caption := headingMarkerRe.ReplaceAllString(collapseSpace(g[3]), "")
		if caption == "" {
			return img
		}
		return img + " [" + caption + "](" + g[4] + ")"
	})
}

// RepairLinkImageAdjacency puts blank lines where converted inline content
// ran into block content: before headings, around images that touch text,
// between consecutive images, and between an image and a following link.
func RepairLinkImageAdjacency(s string) string {
	s = linkThenHeadingRe.ReplaceAllString(s, "$1\n\n$2")
	s = separateImages(s)
	return separateHeadings(s)
}

func separateImages(s string) string {
	matches := imageRe.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for i, m := range matches {
		gap := s[last:m[0]]
		switch {
		case i > 0 && strings.TrimSpace(gap) == "":
			gap = "\n\n"
		case i > 0:
			gap = beforeImage(afterImage(gap))
		default:
			gap = beforeImage(gap)
		}
		b.WriteString(gap)
		b.WriteString(s[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(afterImage(s[last:]))
	return b.String()
}

// afterImage separates the text following an image. A link opening after
// optional spaces, or any other non-space character besides a closing
// bracket or parenthesis, moves to a new block.
func afterImage(s string) string {
	rest := strings.TrimLeft(s, " \t")
	if strings.HasPrefix(rest, "[") {
		return "\n\n" + rest
	}
	if s == "" {
		return s
	}
	switch c := s[0]; {
	case isSpace(c), c == ']', c == ')':
		return s
	}
	return "\n\n" + s
}

// beforeImage separates an image from text it directly follows, unless the
// image opens a link or a parenthetical.
func beforeImage(s string) string {
	if s == "" {
		return s
	}
	switch c := s[len(s)-1]; {
	case isSpace(c), c == '[', c == '(':
		return s
	}
	return s + "\n\n"
}

func isSpace(c byte) bool {
	return strings.IndexByte(" \t\n\r\f\v", c) >= 0
}

// separateHeadings inserts a blank line before every ATX heading that
// directly follows a non-blank line. Fenced code is left untouched.
func separateHeadings(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && i > 0 && headingLineRe.MatchString(line) && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
