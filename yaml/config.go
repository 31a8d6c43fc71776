// Package yaml loads exclusion configuration files. JSON files are accepted
// as well since JSON is a subset of YAML.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/fwojciec/markeddown"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the configuration file. Template exclusions are kept
// as a node so the file's key order survives decoding.
type fileConfig struct {
	GlobalExclusions   stringList `yaml:"globalExclusions"`
	TemplateExclusions yaml.Node  `yaml:"templateExclusions"`
	TemplateSuffixes   []string   `yaml:"templateSuffixes"`
}

// stringList decodes either a sequence of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a selector or a list of selectors", node.Line)
	}
}

// ParseConfig decodes a YAML or JSON exclusion configuration.
//
//	globalExclusions: [".sidebar", "#comments"]
//	templateExclusions:
//	  blog/_entry: ["#comments", ".author-bio"]
//	templateSuffixes: [".twig"]
func ParseConfig(data []byte) (*markeddown.ExclusionConfig, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, markeddown.Errorf(markeddown.EINVALID, "invalid exclusion config: %v", err)
	}

	config := &markeddown.ExclusionConfig{
		GlobalExclusions: raw.GlobalExclusions,
		TemplateSuffixes: raw.TemplateSuffixes,
	}

	node := &raw.TemplateExclusions
	switch {
	case node.Kind == 0:
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
	case node.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			var selectors stringList
			if err := value.Decode(&selectors); err != nil {
				return nil, markeddown.Errorf(markeddown.EINVALID, "invalid exclusions for %q: %v", key.Value, err)
			}
			config.TemplateExclusions = append(config.TemplateExclusions, markeddown.ScopedExclusion{
				Pattern:   key.Value,
				Selectors: selectors,
			})
		}
	default:
		return nil, markeddown.Errorf(markeddown.EINVALID, "templateExclusions must be a mapping of patterns to selectors")
	}

	return config, nil
}

// Ensure ConfigLoader implements markeddown.ConfigLoader at compile time.
var _ markeddown.ConfigLoader = (*ConfigLoader)(nil)

// ConfigLoader reads the configuration file on first use and caches the
// result until Invalidate is called. A missing file or an empty path yields
// an empty configuration.
type ConfigLoader struct {
	Path   string
	Logger *slog.Logger

	mu     sync.Mutex
	config *markeddown.ExclusionConfig
}

// NewConfigLoader creates a ConfigLoader for the file at path.
func NewConfigLoader(path string, logger *slog.Logger) *ConfigLoader {
	return &ConfigLoader{Path: path, Logger: logger}
}

// LoadConfig returns the cached configuration, reading the file if needed.
// Failed loads are not cached.
func (l *ConfigLoader) LoadConfig() (*markeddown.ExclusionConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config != nil {
		return l.config, nil
	}

	if l.Path == "" {
		l.config = &markeddown.ExclusionConfig{}
		return l.config, nil
	}

	data, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger().Debug("exclusion config not found, using defaults", "path", l.Path)
		l.config = &markeddown.ExclusionConfig{}
		return l.config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion config: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	l.logger().Debug("exclusion config loaded",
		"path", l.Path,
		"global", len(config.GlobalExclusions),
		"scoped", len(config.TemplateExclusions))
	l.config = config
	return config, nil
}

// Invalidate drops the cached configuration so the next LoadConfig reads
// the file again.
func (l *ConfigLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config = nil
}

func (l *ConfigLoader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
