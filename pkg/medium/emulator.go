package medium

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/andydunstall/ringcast/pkg/gossip"
	"github.com/andydunstall/ringcast/pkg/log"
)

// ErrStalled indicates the medium can't make progress, as every active peer
// is waiting for a message though no messages are pending, or the medium
// exceeded its configured maximum number of rounds.
var ErrStalled = errors.New("medium stalled")

// Stats contains the message counts of the medium.
type Stats struct {
	Rounds    uint64 `json:"rounds"`
	Sent      uint64 `json:"sent"`
	Delivered uint64 `json:"delivered"`
	Dropped   uint64 `json:"dropped"`
	Bytes     uint64 `json:"bytes"`
}

// Emulator is a round-synchronous medium shared by a fixed set of peers.
type Emulator struct {
	devices   int
	maxRounds uint64

	// queued contains the messages deliverable to each peer, ordered by
	// the time they were sent.
	queued [][]gossip.Message
	// inflight contains the messages sent in the current round, which
	// become deliverable in the next round.
	inflight []gossip.Message
	// received is whether each peer has received a message in the current
	// round.
	received []bool
	// active is whether each peer is still running.
	active []bool

	activeCount int
	waiting     int

	// roundCh is closed when the current round ends.
	roundCh chan struct{}

	// err is set when the medium can no longer progress.
	err error

	// mu protects the above fields.
	mu sync.Mutex

	round     *atomic.Uint64
	sent      *atomic.Uint64
	delivered *atomic.Uint64
	dropped   *atomic.Uint64
	bytes     *atomic.Uint64

	// codec round trips each sent message.
	codec func(msg gossip.Message) (gossip.Message, int, error)

	metrics *Metrics
	watcher Watcher
	logger  log.Logger
}

// New creates a medium for the given number of peers. Every peer starts as
// active in round 0.
func New(devices int, opts ...Option) *Emulator {
	options := options{
		metrics: NewMetrics(),
		watcher: &nopWatcher{},
		logger:  log.NewNopLogger(),
	}
	for _, o := range opts {
		o.apply(&options)
	}

	active := make([]bool, devices)
	for i := range active {
		active[i] = true
	}

	return &Emulator{
		devices:     devices,
		maxRounds:   options.maxRounds,
		queued:      make([][]gossip.Message, devices),
		received:    make([]bool, devices),
		active:      active,
		activeCount: devices,
		roundCh:     make(chan struct{}),
		round:       atomic.NewUint64(0),
		sent:        atomic.NewUint64(0),
		delivered:   atomic.NewUint64(0),
		dropped:     atomic.NewUint64(0),
		bytes:       atomic.NewUint64(0),
		codec:       roundTrip,
		metrics:     options.metrics,
		watcher:     options.watcher,
		logger:      options.logger.WithSubsystem("medium"),
	}
}

// Endpoint returns the medium used by the peer with the given identity.
func (e *Emulator) Endpoint(id int) *Endpoint {
	if id < 0 || id >= e.devices {
		panic(fmt.Sprintf("endpoint out of range: %d", id))
	}
	return &Endpoint{
		id:       id,
		emulator: e,
	}
}

// Round returns the current round.
func (e *Emulator) Round() uint64 {
	return e.round.Load()
}

func (e *Emulator) Stats() Stats {
	return Stats{
		Rounds:    e.round.Load(),
		Sent:      e.sent.Load(),
		Delivered: e.delivered.Load(),
		Dropped:   e.dropped.Load(),
		Bytes:     e.bytes.Load(),
	}
}

// Leave removes the peer from the medium once it has finished. The peer no
// longer blocks rounds from advancing and any undelivered messages addressed
// to it are dropped.
func (e *Emulator) Leave(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active[id] {
		return
	}

	e.active[id] = false
	e.activeCount--
	e.dropLocked(len(e.queued[id]))
	e.queued[id] = nil

	e.logger.Debug(
		"peer left",
		zap.Int("peer", id),
		zap.Uint64("round", e.round.Load()),
	)

	if e.activeCount == 0 {
		e.dropLocked(len(e.inflight))
		e.inflight = nil
		return
	}
	if e.waiting == e.activeCount {
		e.advanceLocked()
	}
}

func (e *Emulator) send(msg gossip.Message) {
	if msg.Destination < 0 || msg.Destination >= e.devices {
		e.logger.Warn(
			"message destination out of range; dropping",
			zap.Stringer("message", msg),
		)
		e.sent.Inc()
		e.dropped.Inc()
		e.metrics.MessagesSent.Inc()
		e.metrics.MessagesDropped.Inc()
		return
	}

	// Pass the message through the wire codec so the receiver gets its own
	// copy of the secrets.
	copied, size, err := e.codec(msg)
	if err != nil {
		e.logger.Error(
			"failed to encode message; dropping",
			zap.Stringer("message", msg),
			zap.Error(err),
		)
		e.sent.Inc()
		e.dropped.Inc()
		e.metrics.MessagesSent.Inc()
		e.metrics.MessagesDropped.Inc()
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	msg = copied
	e.inflight = append(e.inflight, msg)

	e.sent.Inc()
	e.bytes.Add(uint64(size))
	e.metrics.MessagesSent.Inc()
	e.metrics.BytesSent.Add(float64(size))

	round := e.round.Load()
	e.logger.Debug(
		"sent message",
		zap.Stringer("message", msg),
		zap.Uint64("round", round),
	)
	e.watcher.OnSend(round, msg)
}

func (e *Emulator) receive(id int) (gossip.Message, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.received[id] || len(e.queued[id]) == 0 {
		return gossip.Message{}, false
	}

	msg := e.queued[id][0]
	e.queued[id] = e.queued[id][1:]
	e.received[id] = true

	e.delivered.Inc()
	e.metrics.MessagesDelivered.Inc()

	e.watcher.OnDeliver(e.round.Load(), msg)

	return msg, true
}

func (e *Emulator) waitForNextRound(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.err != nil {
		e.mu.Unlock()
		return e.err
	}
	if !e.active[id] {
		e.mu.Unlock()
		return fmt.Errorf("peer %d already left", id)
	}

	roundCh := e.roundCh
	e.waiting++
	if e.waiting == e.activeCount {
		e.advanceLocked()
	}
	e.mu.Unlock()

	select {
	case <-roundCh:
	case <-ctx.Done():
		e.mu.Lock()
		// Only stop waiting if the round hasn't already advanced.
		if e.roundCh == roundCh {
			e.waiting--
		}
		e.mu.Unlock()
		return ctx.Err()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// advanceLocked ends the current round, making the messages sent in the
// round deliverable and waking all waiting peers.
func (e *Emulator) advanceLocked() {
	defer func() {
		e.waiting = 0
		close(e.roundCh)
		e.roundCh = make(chan struct{})
	}()

	if !e.pendingLocked() {
		e.err = fmt.Errorf(
			"%w: no pending messages in round %d",
			ErrStalled, e.round.Load(),
		)
		e.logger.Warn("medium stalled", zap.Error(e.err))
		return
	}

	round := e.round.Inc()
	if e.maxRounds > 0 && round > e.maxRounds {
		e.err = fmt.Errorf(
			"%w: exceeded max rounds %d", ErrStalled, e.maxRounds,
		)
		e.logger.Warn("medium stalled", zap.Error(e.err))
		return
	}

	for _, msg := range e.inflight {
		if !e.active[msg.Destination] {
			e.dropLocked(1)
			continue
		}
		e.queued[msg.Destination] = append(e.queued[msg.Destination], msg)
	}
	e.inflight = nil

	for i := range e.received {
		e.received[i] = false
	}

	e.metrics.Rounds.Inc()

	e.logger.Debug("next round", zap.Uint64("round", round))
	e.watcher.OnRound(round)
}

// pendingLocked returns whether there are any messages still to be
// delivered to active peers.
func (e *Emulator) pendingLocked() bool {
	if len(e.inflight) > 0 {
		return true
	}
	for id, queued := range e.queued {
		if e.active[id] && len(queued) > 0 {
			return true
		}
	}
	return false
}

func (e *Emulator) dropLocked(n int) {
	if n == 0 {
		return
	}
	e.dropped.Add(uint64(n))
	e.metrics.MessagesDropped.Add(float64(n))
}

// Endpoint is a peers view of the medium.
type Endpoint struct {
	id       int
	emulator *Emulator
}

func (e *Endpoint) Send(msg gossip.Message) {
	e.emulator.send(msg)
}

func (e *Endpoint) Receive() (gossip.Message, bool) {
	return e.emulator.receive(e.id)
}

func (e *Endpoint) WaitForNextRound(ctx context.Context) error {
	return e.emulator.waitForNextRound(ctx, e.id)
}

// Leave removes the peer from the medium.
func (e *Endpoint) Leave() {
	e.emulator.Leave(e.id)
}

var _ gossip.Medium = &Endpoint{}
