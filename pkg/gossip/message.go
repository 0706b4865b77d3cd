package gossip

import "fmt"

// Message is a gossip message containing the secrets known by the source peer
// when the message was sent.
//
// A message must not be modified after it is created.
type Message struct {
	Source      int
	Destination int
	Secrets     Secrets
}

// NewMessage creates a message from source to destination. The secrets are
// copied so later updates to the senders secrets aren't visible to the
// receiver.
func NewMessage(source, destination int, secrets Secrets) Message {
	return Message{
		Source:      source,
		Destination: destination,
		Secrets:     secrets.Clone(),
	}
}

func (m Message) String() string {
	return fmt.Sprintf("%d -> %d : %s", m.Source, m.Destination, m.Secrets)
}
