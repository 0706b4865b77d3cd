package medium

import "github.com/andydunstall/ringcast/pkg/gossip"

// Watcher is used to receive notifications of messages passing through the
// medium.
//
// The implementations of Watcher must not block. Watcher is also called with
// the emulator mutex held so must not call back to the emulator.
type Watcher interface {
	// OnSend notifies that a peer sent a message in the given round.
	OnSend(round uint64, msg gossip.Message)

	// OnDeliver notifies that a peer received a message in the given round.
	OnDeliver(round uint64, msg gossip.Message)

	// OnRound notifies that the medium advanced to the given round.
	OnRound(round uint64)
}

type nopWatcher struct {
}

func (w *nopWatcher) OnSend(_ uint64, _ gossip.Message) {}

func (w *nopWatcher) OnDeliver(_ uint64, _ gossip.Message) {}

func (w *nopWatcher) OnRound(_ uint64) {}

var _ Watcher = &nopWatcher{}
