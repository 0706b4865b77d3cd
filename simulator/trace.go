package simulator

import (
	"github.com/andydunstall/ringcast/pkg/gossip"
	"github.com/andydunstall/ringcast/pkg/medium"
)

// traceRecorder records every message sent on the medium.
type traceRecorder struct {
	enabled bool
	entries []TraceEntry
}

func newTraceRecorder(enabled bool) *traceRecorder {
	return &traceRecorder{
		enabled: enabled,
	}
}

// OnSend is called with the emulator mutex held, so doesn't need its own
// lock.
func (r *traceRecorder) OnSend(round uint64, msg gossip.Message) {
	if !r.enabled {
		return
	}
	r.entries = append(r.entries, TraceEntry{
		Round:       round,
		Source:      msg.Source,
		Destination: msg.Destination,
		Secrets:     msg.Secrets.Sorted(),
	})
}

func (r *traceRecorder) OnDeliver(_ uint64, _ gossip.Message) {}

func (r *traceRecorder) OnRound(_ uint64) {}

// Entries returns the recorded entries. Must only be called once every peer
// has finished.
func (r *traceRecorder) Entries() []TraceEntry {
	return r.entries
}

var _ medium.Watcher = &traceRecorder{}
