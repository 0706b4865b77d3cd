package gossip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	tests := []struct {
		name        string
		id          int
		devices     int
		successor   int
		predecessor int
		first       bool
		last        bool
	}{
		{"single", 0, 1, 0, 0, true, true},
		{"first", 0, 4, 1, 3, true, false},
		{"interior", 2, 4, 3, 1, false, false},
		{"last", 3, 4, 0, 2, false, true},
		{"pair", 1, 2, 0, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring, err := NewRing(tt.id, tt.devices)
			require.NoError(t, err)

			assert.Equal(t, tt.id, ring.ID())
			assert.Equal(t, tt.devices, ring.Devices())
			assert.Equal(t, tt.successor, ring.Successor())
			assert.Equal(t, tt.predecessor, ring.Predecessor())
			assert.Equal(t, tt.first, ring.IsFirst())
			assert.Equal(t, tt.last, ring.IsLast())
		})
	}
}

func TestRing_Invalid(t *testing.T) {
	_, err := NewRing(0, 0)
	assert.ErrorIs(t, err, ErrInvalidDevices)

	_, err = NewRing(0, -3)
	assert.ErrorIs(t, err, ErrInvalidDevices)

	_, err = NewRing(4, 4)
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	_, err = NewRing(-1, 4)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestNewPeer(t *testing.T) {
	peer, err := NewPeer(StrategyOneWay, 1, 3)
	require.NoError(t, err)
	assert.IsType(t, &OneWay{}, peer)
	assert.Equal(t, 1, peer.ID())
	assert.Equal(t, NewSecrets(1), peer.Secrets())

	peer, err = NewPeer(StrategyTwoWay, 2, 3)
	require.NoError(t, err)
	assert.IsType(t, &TwoWay{}, peer)

	peer, err = NewPeer("three-way", 0, 3)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Nil(t, peer)

	peer, err = NewPeer(StrategyTwoWay, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDevices)
	assert.Nil(t, peer)
}

func TestParseStrategy(t *testing.T) {
	strategy, err := ParseStrategy("one-way")
	assert.NoError(t, err)
	assert.Equal(t, StrategyOneWay, strategy)

	strategy, err = ParseStrategy("two-way")
	assert.NoError(t, err)
	assert.Equal(t, StrategyTwoWay, strategy)

	_, err = ParseStrategy("")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
