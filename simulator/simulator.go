// Package simulator runs a ring of gossip peers on an in-process medium and
// reports the secrets each peer learned.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andydunstall/ringcast/pkg/gossip"
	"github.com/andydunstall/ringcast/pkg/log"
	"github.com/andydunstall/ringcast/pkg/medium"
	"github.com/andydunstall/ringcast/simulator/config"
)

// Run runs a simulation with the configured strategy and number of devices.
//
// Each device runs in its own goroutine until it knows every secret. Returns
// an error if any device fails, such as the medium stalls or the simulation
// times out.
func Run(ctx context.Context, conf *config.Config, opts ...Option) (*Result, error) {
	options := options{
		metrics: medium.NewMetrics(),
		logger:  log.NewNopLogger(),
	}
	for _, o := range opts {
		o.apply(&options)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	// Already validated.
	strategy, _ := gossip.ParseStrategy(conf.Strategy)

	id := uuid.New().String()
	logger := options.logger.WithSubsystem("simulator").With(
		zap.String("run-id", id),
	)

	peers := make([]gossip.Peer, 0, conf.Devices)
	for i := 0; i != conf.Devices; i++ {
		peer, err := gossip.NewPeer(strategy, i, conf.Devices)
		if err != nil {
			return nil, fmt.Errorf("peer %d: %w", i, err)
		}
		peers = append(peers, peer)
	}

	trace := newTraceRecorder(conf.Trace)
	emulator := medium.New(
		conf.Devices,
		medium.WithMaxRounds(conf.MaxRounds),
		medium.WithMetrics(options.metrics),
		medium.WithWatcher(trace),
		medium.WithLogger(options.logger),
	)

	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}

	logger.Info(
		"starting simulation",
		zap.String("strategy", string(strategy)),
		zap.Int("devices", conf.Devices),
	)

	started := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, peer := range peers {
		peer := peer
		endpoint := emulator.Endpoint(peer.ID())
		g.Go(func() error {
			// Leave once done so the remaining peers don't wait for this
			// peer to end each round.
			defer endpoint.Leave()

			if err := gossip.Run(ctx, peer, endpoint, options.logger); err != nil {
				return fmt.Errorf("peer %d: %w", peer.ID(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("simulation failed", zap.Error(err))
		return nil, err
	}

	result := &Result{
		ID:       id,
		Strategy: string(strategy),
		Started:  started,
		Duration: time.Since(started),
		Stats:    emulator.Stats(),
		Trace:    trace.Entries(),
	}
	for _, peer := range peers {
		result.Devices = append(result.Devices, DeviceResult{
			ID:      peer.ID(),
			Secrets: peer.Secrets().Sorted(),
		})
	}

	logger.Info(
		"simulation complete",
		zap.Uint64("rounds", result.Stats.Rounds),
		zap.Uint64("sent", result.Stats.Sent),
		zap.Uint64("dropped", result.Stats.Dropped),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}
