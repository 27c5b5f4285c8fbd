package schemasync

import (
	"fmt"
	"time"
)

// config holds Syncer-wide settings that do not change between runs
type config struct {
	runID func() string
	clock func() time.Time
}

func defaultConfig() *config {
	return &config{}
}

// Option is a function that configures a Syncer
type Option func(*config) error

// options applies the given options to the syncer
func (s *syncer) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return err
		}
	}
	return nil
}

// WithRunIDFunc configures how run ids are generated when a run does not supply one
func WithRunIDFunc(fn func() string) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("run id function is nil")
		}
		c.runID = fn
		return nil
	}
}

// WithClock configures the time source used for run durations
func WithClock(fn func() time.Time) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("clock is nil")
		}
		c.clock = fn
		return nil
	}
}
