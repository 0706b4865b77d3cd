package simulator

import (
	"github.com/andydunstall/ringcast/pkg/log"
	"github.com/andydunstall/ringcast/pkg/medium"
)

type options struct {
	metrics *medium.Metrics
	logger  log.Logger
}

type metricsOption struct {
	Metrics *medium.Metrics
}

func (o metricsOption) apply(opts *options) {
	opts.metrics = o.Metrics
}

// WithMetrics configures the medium metrics to update. Defaults to
// unregistered metrics.
func WithMetrics(metrics *medium.Metrics) Option {
	return metricsOption{Metrics: metrics}
}

type loggerOption struct {
	Logger log.Logger
}

func (o loggerOption) apply(opts *options) {
	opts.logger = o.Logger
}

// WithLogger configures the logger. Defaults to no output.
func WithLogger(logger log.Logger) Option {
	return loggerOption{Logger: logger}
}

type Option interface {
	apply(*options)
}
