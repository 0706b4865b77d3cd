package gossip

import "errors"

var (
	// ErrInvalidDevices indicates the number of devices isn't positive.
	ErrInvalidDevices = errors.New("invalid number of devices")

	// ErrInvalidIdentity indicates a peer identity outside the ring.
	ErrInvalidIdentity = errors.New("invalid peer identity")

	// ErrMisdelivered indicates the medium delivered a message addressed to
	// another peer.
	ErrMisdelivered = errors.New("misdelivered message")

	// ErrUnknownStrategy indicates an unsupported gossip strategy.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
