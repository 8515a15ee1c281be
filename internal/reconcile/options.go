package reconcile

import (
	"github.com/sirupsen/logrus"

	"rest-mapper/internal/entity"
	"rest-mapper/internal/logger"
	"rest-mapper/internal/match"
	"rest-mapper/internal/plan"
)

// Option configures Build and NewSession.
type Option func(*options)

type options struct {
	oracle entity.Oracle
	log    logrus.FieldLogger
}

// WithOracle replaces the default structural entity oracle.
func WithOracle(o entity.Oracle) Option {
	return func(opts *options) {
		opts.oracle = o
	}
}

// WithLogger sets the session logger. Build ignores it.
func WithLogger(log logrus.FieldLogger) Option {
	return func(opts *options) {
		opts.log = log
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.log == nil {
		o.log = logger.Discard()
	}

	return o
}

func (o options) planner() *plan.Planner {
	return plan.NewPlanner(match.NewChecker(o.oracle))
}
