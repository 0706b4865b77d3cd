package medium

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	// MessagesSent is the total number of messages sent by peers.
	MessagesSent prometheus.Counter

	// MessagesDelivered is the total number of messages received by peers.
	MessagesDelivered prometheus.Counter

	// MessagesDropped is the total number of messages that were never
	// received as the destination peer had already finished.
	MessagesDropped prometheus.Counter

	// BytesSent is the total number of encoded message bytes sent.
	BytesSent prometheus.Counter

	// Rounds is the total number of completed rounds.
	Rounds prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		MessagesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ringcast",
				Subsystem: "medium",
				Name:      "messages_sent_total",
				Help:      "Total number of messages sent by peers",
			},
		),
		MessagesDelivered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ringcast",
				Subsystem: "medium",
				Name:      "messages_delivered_total",
				Help:      "Total number of messages received by peers",
			},
		),
		MessagesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ringcast",
				Subsystem: "medium",
				Name:      "messages_dropped_total",
				Help:      "Total number of messages never received",
			},
		),
		BytesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ringcast",
				Subsystem: "medium",
				Name:      "bytes_sent_total",
				Help:      "Total number of encoded message bytes sent",
			},
		),
		Rounds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ringcast",
				Subsystem: "medium",
				Name:      "rounds_total",
				Help:      "Total number of completed rounds",
			},
		),
	}
}

func (m *Metrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		m.MessagesSent,
		m.MessagesDelivered,
		m.MessagesDropped,
		m.BytesSent,
		m.Rounds,
	)
}
