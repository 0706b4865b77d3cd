package gossip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecrets(t *testing.T) {
	t.Run("union", func(t *testing.T) {
		s := NewSecrets(0)
		assert.Equal(t, 2, s.Union(NewSecrets(1, 2)))
		assert.Equal(t, []int{0, 1, 2}, s.Sorted())
	})

	t.Run("union subset", func(t *testing.T) {
		s := NewSecrets(0, 1, 2)
		assert.Equal(t, 0, s.Union(NewSecrets(1)))
		assert.Equal(t, 0, s.Union(NewSecrets()))
		assert.Equal(t, NewSecrets(0, 1, 2), s)
	})

	t.Run("clone", func(t *testing.T) {
		s := NewSecrets(0, 1)
		clone := s.Clone()
		clone.Union(NewSecrets(5))

		assert.False(t, s.Contains(5))
		assert.True(t, clone.Contains(5))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "{}", NewSecrets().String())
		assert.Equal(t, "{0}", NewSecrets(0).String())
		assert.Equal(t, "{0, 1, 12}", NewSecrets(12, 1, 0).String())
	})
}

func TestMessage(t *testing.T) {
	t.Run("snapshot", func(t *testing.T) {
		secrets := NewSecrets(0)
		msg := NewMessage(0, 1, secrets)

		secrets.Union(NewSecrets(3))
		assert.Equal(t, NewSecrets(0), msg.Secrets)
	})

	t.Run("string", func(t *testing.T) {
		msg := NewMessage(2, 3, NewSecrets(2, 0, 1))
		assert.Equal(t, "2 -> 3 : {0, 1, 2}", msg.String())
	})
}
