package gossip

// TwoWay is a peer that gossips with both its successor and predecessor.
//
// Peer 0 starts by sending its secret to peer 1, then each interior peer
// relays to the neighbour that didn't send the message. The last peer
// reflects messages back to its predecessor, so secrets travel from peer 0 to
// the last peer and back again, with one message per peer in each direction.
type TwoWay struct {
	ring    Ring
	secrets Secrets
}

// NewTwoWay returns a two-way peer with the given identity in a ring of
// devices peers.
func NewTwoWay(id, devices int) (*TwoWay, error) {
	ring, err := NewRing(id, devices)
	if err != nil {
		return nil, err
	}
	return &TwoWay{
		ring:    ring,
		secrets: NewSecrets(id),
	}, nil
}

func (p *TwoWay) ID() int {
	return p.ring.ID()
}

func (p *TwoWay) Start(m Medium) {
	if p.ring.IsFirst() && !p.Done() {
		p.send(m, p.ring.Successor())
	}
}

func (p *TwoWay) Step(m Medium, msg Message) {
	p.secrets.Union(msg.Secrets)

	switch {
	case p.ring.IsLast():
		// Turn around.
		p.send(m, p.ring.Predecessor())
	case p.ring.IsFirst():
		// The origin has nowhere to relay to.
	default:
		p.relay(m, msg)
	}
}

func (p *TwoWay) Done() bool {
	return p.secrets.Len() == p.ring.Devices()
}

func (p *TwoWay) Secrets() Secrets {
	return p.secrets.Clone()
}

// relay sends to the neighbour that didn't send msg.
func (p *TwoWay) relay(m Medium, msg Message) {
	if msg.Source == p.ring.Predecessor() {
		p.send(m, p.ring.Successor())
	} else {
		p.send(m, p.ring.Predecessor())
	}
}

func (p *TwoWay) send(m Medium, to int) {
	m.Send(NewMessage(p.ring.ID(), to, p.secrets))
}

var _ Peer = &TwoWay{}
