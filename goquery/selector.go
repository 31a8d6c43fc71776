package goquery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/markeddown"
	"golang.org/x/net/html"
)

// Kind identifies which of the supported selector shapes a Selector has.
type Kind int

// Supported selector shapes.
const (
	KindID Kind = iota + 1
	KindClass
	KindTag
	KindTagWithID
	KindTagWithClass
)

// Selector is a translated exclusion selector. It matches elements
// structurally, so values taken from configuration are never interpreted
// as query syntax.
type Selector struct {
	Kind  Kind
	Tag   string
	Value string
}

// Selector works both as a goquery matcher and a cascadia matcher.
var (
	_ goquery.Matcher  = Selector{}
	_ cascadia.Matcher = Selector{}
)

// tagSelectorRe matches "tag", "tag#id" and "tag.class". Compound values
// must be identifiers, so "div#a:hover" and "div.a.b" are rejected.
var tagSelectorRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)(?:([#.])([A-Za-z][A-Za-z0-9_-]*))?$`)

// Translate parses one of the supported selector shapes: "#id", ".class",
// "tag", "tag#id" and "tag.class". Anything else, such as attribute
// selectors, combinators or pseudo-classes, returns an EINVALID error.
// Standalone "#id" and ".class" values are taken literally and may not be
// empty or hold whitespace; compound values must be identifiers.
func Translate(text string) (Selector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Selector{}, markeddown.Errorf(markeddown.EINVALID, "empty selector")
	}

	switch text[0] {
	case '#':
		return newSelector(KindID, "", text[1:], text)
	case '.':
		return newSelector(KindClass, "", text[1:], text)
	}

	m := tagSelectorRe.FindStringSubmatch(text)
	if m == nil {
		return Selector{}, markeddown.Errorf(markeddown.EINVALID, "unsupported selector %q", text)
	}
	tag := strings.ToLower(m[1])
	switch m[2] {
	case "#":
		return newSelector(KindTagWithID, tag, m[3], text)
	case ".":
		return newSelector(KindTagWithClass, tag, m[3], text)
	default:
		return Selector{Kind: KindTag, Tag: tag}, nil
	}
}

// MustTranslate is like Translate but panics on error. It is meant for
// selectors fixed at compile time.
func MustTranslate(text string) Selector {
	sel, err := Translate(text)
	if err != nil {
		panic(err)
	}
	return sel
}

func newSelector(kind Kind, tag, value, text string) (Selector, error) {
	if value == "" {
		return Selector{}, markeddown.Errorf(markeddown.EINVALID, "selector %q has no value", text)
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return Selector{}, markeddown.Errorf(markeddown.EINVALID, "unsupported selector %q", text)
	}
	return Selector{Kind: kind, Tag: tag, Value: value}, nil
}

// Match reports whether n is an element matching the selector.
func (s Selector) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch s.Kind {
	case KindID:
		return hasID(n, s.Value)
	case KindClass:
		return hasClass(n, s.Value)
	case KindTag:
		return n.Data == s.Tag
	case KindTagWithID:
		return n.Data == s.Tag && hasID(n, s.Value)
	case KindTagWithClass:
		return n.Data == s.Tag && hasClass(n, s.Value)
	default:
		return false
	}
}

// MatchAll returns n and its descendants that match, in document order.
func (s Selector) MatchAll(n *html.Node) []*html.Node {
	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if s.Match(n) {
			matches = append(matches, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return matches
}

// Filter returns the nodes that match.
func (s Selector) Filter(nodes []*html.Node) []*html.Node {
	var matches []*html.Node
	for _, n := range nodes {
		if s.Match(n) {
			matches = append(matches, n)
		}
	}
	return matches
}

// String renders an equivalent CSS selector. Values are written as quoted
// CSS strings, so the result is safe to pass to a CSS selector engine.
func (s Selector) String() string {
	switch s.Kind {
	case KindID:
		return `[id="` + escapeCSSString(s.Value) + `"]`
	case KindClass:
		return `[class~="` + escapeCSSString(s.Value) + `"]`
	case KindTag:
		return s.Tag
	case KindTagWithID:
		return s.Tag + `[id="` + escapeCSSString(s.Value) + `"]`
	case KindTagWithClass:
		return s.Tag + `[class~="` + escapeCSSString(s.Value) + `"]`
	default:
		return ""
	}
}

func escapeCSSString(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasID(n *html.Node, id string) bool {
	v, ok := attr(n, "id")
	return ok && v == id
}

// hasClass matches whole whitespace-separated class tokens only.
func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(v) {
		if token == class {
			return true
		}
	}
	return false
}
