package markeddown

import "strings"

// DefaultTemplateSuffixes are stripped from context identifiers and
// patterns before scoped exclusions are matched.
var DefaultTemplateSuffixes = []string{".twig"}

// ScopedExclusion holds exclusion selectors that only apply when the
// context identifier matches Pattern.
type ScopedExclusion struct {
	Pattern   string
	Selectors []string
}

// ExclusionConfig holds caller-supplied exclusion rules.
//
// A config is read-only once loaded and may be shared by concurrent
// conversions without locking.
type ExclusionConfig struct {
	// GlobalExclusions always apply.
	GlobalExclusions []string

	// TemplateExclusions apply when their pattern matches the context
	// identifier. Order follows the configuration file.
	TemplateExclusions []ScopedExclusion

	// TemplateSuffixes overrides DefaultTemplateSuffixes when non-nil.
	TemplateSuffixes []string
}

// SelectorsFor returns the exclusion selectors that apply to contextID:
// every global selector followed by the selectors of each matching scoped
// pattern, in configuration order. A nil config yields nil.
func (c *ExclusionConfig) SelectorsFor(contextID string) []string {
	if c == nil {
		return nil
	}

	selectors := make([]string, 0, len(c.GlobalExclusions))
	selectors = append(selectors, c.GlobalExclusions...)

	if contextID == "" {
		return selectors
	}

	suffixes := c.suffixes()
	id := TrimTemplateSuffix(contextID, suffixes)
	for _, scoped := range c.TemplateExclusions {
		if MatchContext(id, TrimTemplateSuffix(scoped.Pattern, suffixes)) {
			selectors = append(selectors, scoped.Selectors...)
		}
	}
	return selectors
}

func (c *ExclusionConfig) suffixes() []string {
	if c.TemplateSuffixes != nil {
		return c.TemplateSuffixes
	}
	return DefaultTemplateSuffixes
}

// TrimTemplateSuffix removes the first recognized suffix from s.
func TrimTemplateSuffix(s string, suffixes []string) string {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

// MatchContext reports whether a normalized scoped pattern applies to a
// normalized context identifier. It checks exact equality, then a
// path-segment suffix match, then substring containment. An empty
// pattern never matches.
func MatchContext(contextID, pattern string) bool {
	switch {
	case pattern == "":
		return false
	case contextID == pattern:
		return true
	case strings.HasSuffix(contextID, "/"+pattern):
		return true
	default:
		return strings.Contains(contextID, pattern)
	}
}

// ConfigLoader provides the exclusion configuration.
type ConfigLoader interface {
	// LoadConfig returns the current configuration. Implementations
	// should cache the result; callers may call it on every conversion.
	LoadConfig() (*ExclusionConfig, error)
}

// StaticConfig is a ConfigLoader that always returns the same config.
type StaticConfig struct {
	Config *ExclusionConfig
}

// LoadConfig returns the wrapped config.
func (s StaticConfig) LoadConfig() (*ExclusionConfig, error) {
	return s.Config, nil
}
