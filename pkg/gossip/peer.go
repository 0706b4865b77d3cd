package gossip

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andydunstall/ringcast/pkg/log"
)

// Medium is the round-synchronous message medium used by a peer to exchange
// messages with the other peers.
//
// Messages sent in round r must not be received before round r+1, and each
// peer receives at most one message per round.
type Medium interface {
	// Send hands off the message for delivery in a later round. Send must
	// not block.
	Send(msg Message)

	// Receive returns a message addressed to the peer in the current round,
	// or false if no message is available.
	Receive() (Message, bool)

	// WaitForNextRound blocks until the medium advances to the next round.
	WaitForNextRound(ctx context.Context) error
}

// Peer is a gossip strategy run by a single peer.
//
// A peer owns its secrets and topology exclusively, the only interaction with
// other peers is via messages sent on the Medium.
type Peer interface {
	// ID returns the peers identity in the ring.
	ID() int

	// Start sends any initial messages before the peer starts receiving.
	Start(m Medium)

	// Step handles a received message, merging the messages secrets and
	// forwarding to the peers neighbours as required.
	Step(m Medium, msg Message)

	// Done returns true once the peer knows the secrets of every peer.
	Done() bool

	// Secrets returns a copy of the peers known secrets. This must only be
	// called once the peer has stopped running.
	Secrets() Secrets
}

// Run runs the peer until it knows every secret.
//
// If no message is available in the current round, Run waits for the next
// round. Returns an error if waiting fails, such as the context is cancelled,
// or if the medium delivers a message addressed to another peer.
func Run(ctx context.Context, p Peer, m Medium, logger log.Logger) error {
	logger = logger.WithSubsystem("gossip").With(zap.Int("peer", p.ID()))

	p.Start(m)

	for !p.Done() {
		msg, ok := m.Receive()
		if !ok {
			if err := m.WaitForNextRound(ctx); err != nil {
				return fmt.Errorf("wait for next round: %w", err)
			}
			continue
		}

		if msg.Destination != p.ID() {
			return fmt.Errorf(
				"%w: %s: expected destination %d",
				ErrMisdelivered, msg, p.ID(),
			)
		}

		logger.Debug(
			"received message",
			zap.Int("source", msg.Source),
			zap.Stringer("secrets", msg.Secrets),
		)

		p.Step(m, msg)
	}

	logger.Debug(
		"peer done",
		zap.Stringer("secrets", p.Secrets()),
	)

	return nil
}
