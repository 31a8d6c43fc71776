package mock

import "github.com/fwojciec/markeddown"

var _ markeddown.ConfigLoader = (*ConfigLoader)(nil)

// ConfigLoader is a mock implementation of markeddown.ConfigLoader.
type ConfigLoader struct {
	LoadConfigFn func() (*markeddown.ExclusionConfig, error)
}

func (l *ConfigLoader) LoadConfig() (*markeddown.ExclusionConfig, error) {
	return l.LoadConfigFn()
}
