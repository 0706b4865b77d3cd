package simulator

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andydunstall/ringcast/pkg/gossip"
	"github.com/andydunstall/ringcast/pkg/medium"
)

// DeviceResult contains the secrets known by a device once it finished.
type DeviceResult struct {
	ID      int   `json:"id"`
	Secrets []int `json:"secrets"`
}

// TraceEntry is a message sent during the simulation.
type TraceEntry struct {
	Round       uint64 `json:"round"`
	Source      int    `json:"source"`
	Destination int    `json:"destination"`
	Secrets     []int  `json:"secrets"`
}

// Result is the outcome of a simulation.
type Result struct {
	ID       string         `json:"id"`
	Strategy string         `json:"strategy"`
	Started  time.Time      `json:"started"`
	Duration time.Duration  `json:"duration"`
	Devices  []DeviceResult `json:"devices"`
	Stats    medium.Stats   `json:"stats"`
	Trace    []TraceEntry   `json:"trace,omitempty"`
}

// Complete returns whether every device knows the secret of every other
// device.
func (r *Result) Complete() bool {
	for _, device := range r.Devices {
		secrets := gossip.NewSecrets(device.Secrets...)
		for id := range r.Devices {
			if !secrets.Contains(id) {
				return false
			}
		}
	}
	return true
}

// Device returns the result of the device with the given identity.
func (r *Result) Device(id int) (DeviceResult, bool) {
	if id < 0 || id >= len(r.Devices) {
		return DeviceResult{}, false
	}
	return r.Devices[id], true
}

// Report writes a human readable summary of the result.
func Report(w io.Writer, r *Result) error {
	var b strings.Builder

	fmt.Fprintf(
		&b, "Simulation %s: %s with %d devices\n",
		r.ID, r.Strategy, len(r.Devices),
	)
	for _, device := range r.Devices {
		fmt.Fprintf(
			&b, "\tDevice %d got secrets: %s\n",
			device.ID, gossip.NewSecrets(device.Secrets...),
		)
	}
	for _, entry := range r.Trace {
		fmt.Fprintf(
			&b, "\tRound %d: %d -> %d : %s\n",
			entry.Round, entry.Source, entry.Destination,
			gossip.NewSecrets(entry.Secrets...),
		)
	}
	fmt.Fprintf(
		&b, "Rounds: %d, sent: %d, delivered: %d, dropped: %d, bytes: %d\n",
		r.Stats.Rounds, r.Stats.Sent, r.Stats.Delivered, r.Stats.Dropped,
		r.Stats.Bytes,
	)
	if r.Complete() {
		b.WriteString("Every device knows every secret\n")
	} else {
		b.WriteString("Incomplete: not every device knows every secret\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
