package form

import (
	"go.uber.org/zap"

	"github.com/brunoga/fieldarray"
)

// Option configures a Form.
type Option interface {
	apply(*config)
}

type config struct {
	initial   map[string]any
	logger    *zap.Logger
	strategy  fieldarray.CloneStrategy
	maxPasses int
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

// WithInitialValues sets the values the form starts with and resets to.
func WithInitialValues(values map[string]any) Option {
	return optionFunc(func(c *config) {
		c.initial = values
	})
}

// WithLogger sets the form's logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithCloneStrategy selects how the form copies initial values.
func WithCloneStrategy(strategy fieldarray.CloneStrategy) Option {
	return optionFunc(func(c *config) {
		c.strategy = strategy
	})
}

// WithMaxSettlePasses bounds how many passes a single Flush runs.
func WithMaxSettlePasses(n int) Option {
	return optionFunc(func(c *config) {
		c.maxPasses = n
	})
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:    zap.NewNop(),
		strategy:  fieldarray.CloneGoClone,
		maxPasses: defaultMaxPasses,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}
