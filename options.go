package fieldarray

import (
	"go.uber.org/zap"

	"github.com/brunoga/fieldarray/internal/core"
)

// CloneStrategy names the deep copy implementation used for values entering
// the array.
type CloneStrategy = core.CloneStrategy

const (
	CloneGoClone       = core.CloneGoClone
	CloneCopyStructure = core.CloneCopyStructure
	CloneDeepCopy      = core.CloneDeepCopy
)

// Option configures a Controller.
type Option interface {
	apply(*config)
}

type config struct {
	logger   *zap.Logger
	devMode  bool
	strategy CloneStrategy
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithDevMode enables diagnostic warnings for misuse that is otherwise
// silently absorbed (invalid indices, stale entry writes, unusable context).
func WithDevMode(enabled bool) Option {
	return optionFunc(func(c *config) {
		c.devMode = enabled
	})
}

// WithCloneStrategy selects the deep copy implementation applied to values
// passed to Push, Insert and Prepend.
func WithCloneStrategy(strategy CloneStrategy) Option {
	return optionFunc(func(c *config) {
		c.strategy = strategy
	})
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:   zap.NewNop(),
		strategy: CloneGoClone,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}
