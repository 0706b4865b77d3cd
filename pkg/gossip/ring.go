package gossip

import "fmt"

// Ring is a peers view of the ring topology. It is computed once when the
// peer is created and never changes.
type Ring struct {
	id      int
	devices int
}

// NewRing returns the ring topology for the peer with the given identity.
//
// Returns an error if devices isn't positive or the identity is outside of
// [0, devices).
func NewRing(id, devices int) (Ring, error) {
	if devices <= 0 {
		return Ring{}, fmt.Errorf("%w: %d", ErrInvalidDevices, devices)
	}
	if id < 0 || id >= devices {
		return Ring{}, fmt.Errorf(
			"%w: %d not in [0, %d)", ErrInvalidIdentity, id, devices,
		)
	}
	return Ring{
		id:      id,
		devices: devices,
	}, nil
}

func (r Ring) ID() int {
	return r.id
}

// Devices returns the total number of peers in the ring.
func (r Ring) Devices() int {
	return r.devices
}

// Successor returns the identity of the next peer in the ring.
func (r Ring) Successor() int {
	return (r.id + 1) % r.devices
}

// Predecessor returns the identity of the previous peer in the ring.
func (r Ring) Predecessor() int {
	return (r.id - 1 + r.devices) % r.devices
}

// IsFirst returns whether the peer is the first peer in the ring, which
// starts gossiping.
func (r Ring) IsFirst() bool {
	return r.id == 0
}

// IsLast returns whether the peer is the last peer in the ring.
func (r Ring) IsLast() bool {
	return r.id+1 == r.devices
}
