package medium

import (
	"github.com/andydunstall/ringcast/pkg/log"
)

type options struct {
	maxRounds uint64
	metrics   *Metrics
	watcher   Watcher
	logger    log.Logger
}

type maxRoundsOption uint64

func (o maxRoundsOption) apply(opts *options) {
	opts.maxRounds = uint64(o)
}

// WithMaxRounds configures the maximum number of rounds before the medium
// considers the peers stalled. Defaults to no limit.
func WithMaxRounds(rounds uint64) Option {
	return maxRoundsOption(rounds)
}

type metricsOption struct {
	Metrics *Metrics
}

func (o metricsOption) apply(opts *options) {
	opts.metrics = o.Metrics
}

// WithMetrics configures the metrics to update. As metrics are registered
// once, they may be shared by multiple emulators. Defaults to unregistered
// metrics.
func WithMetrics(metrics *Metrics) Option {
	return metricsOption{Metrics: metrics}
}

type watcherOption struct {
	Watcher Watcher
}

func (o watcherOption) apply(opts *options) {
	opts.watcher = o.Watcher
}

// WithWatcher configures a watcher to notify of sent and delivered
// messages.
func WithWatcher(watcher Watcher) Option {
	return watcherOption{Watcher: watcher}
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
