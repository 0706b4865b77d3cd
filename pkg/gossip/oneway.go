package gossip

// OneWay is a peer that only ever gossips to its successor, so secrets travel
// around the ring in a single direction.
//
// Peer 0 starts by sending its secret to peer 1. Each peer then forwards its
// accumulated secrets to its successor whenever it receives a message.
type OneWay struct {
	ring    Ring
	secrets Secrets
}

// NewOneWay returns a one-way peer with the given identity in a ring of
// devices peers.
func NewOneWay(id, devices int) (*OneWay, error) {
	ring, err := NewRing(id, devices)
	if err != nil {
		return nil, err
	}
	return &OneWay{
		ring:    ring,
		secrets: NewSecrets(id),
	}, nil
}

func (p *OneWay) ID() int {
	return p.ring.ID()
}

func (p *OneWay) Start(m Medium) {
	// With a single device the peer already knows every secret.
	if p.ring.IsFirst() && !p.Done() {
		p.send(m)
	}
}

func (p *OneWay) Step(m Medium, msg Message) {
	p.secrets.Union(msg.Secrets)

	if p.successorAlreadyComplete(msg) {
		return
	}
	p.send(m)
}

func (p *OneWay) Done() bool {
	return p.secrets.Len() == p.ring.Devices()
}

func (p *OneWay) Secrets() Secrets {
	return p.secrets.Clone()
}

// successorAlreadyComplete returns whether the successor is the last peer
// in the ring and the received message already contained every secret.
//
// The last peer is the first to learn every secret, so it has already
// stopped receiving once a complete set reaches its predecessor.
func (p *OneWay) successorAlreadyComplete(msg Message) bool {
	successorIsLast := p.ring.Successor()+1 == p.ring.Devices()
	receivedComplete := msg.Secrets.Len() == p.ring.Devices()
	return successorIsLast && receivedComplete
}

func (p *OneWay) send(m Medium) {
	m.Send(NewMessage(p.ring.ID(), p.ring.Successor(), p.secrets))
}

var _ Peer = &OneWay{}
