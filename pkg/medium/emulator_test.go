package medium

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andydunstall/ringcast/pkg/gossip"
)

type fakeWatcher struct {
	sent      []gossip.Message
	delivered []uint64
	rounds    []uint64
}

func (w *fakeWatcher) OnSend(_ uint64, msg gossip.Message) {
	w.sent = append(w.sent, msg)
}

func (w *fakeWatcher) OnDeliver(round uint64, _ gossip.Message) {
	w.delivered = append(w.delivered, round)
}

func (w *fakeWatcher) OnRound(round uint64) {
	w.rounds = append(w.rounds, round)
}

// waitAll waits for the next round on each of the given endpoints
// concurrently, returning the error from each.
func waitAll(ctx context.Context, endpoints ...*Endpoint) []error {
	errs := make([]error, len(endpoints))
	var wg sync.WaitGroup
	for i, endpoint := range endpoints {
		wg.Add(1)
		go func(i int, endpoint *Endpoint) {
			defer wg.Done()
			errs[i] = endpoint.WaitForNextRound(ctx)
		}(i, endpoint)
	}
	wg.Wait()
	return errs
}

func TestEmulator_Delivery(t *testing.T) {
	t.Run("deliver next round", func(t *testing.T) {
		e := New(2)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)

		p0.Send(gossip.NewMessage(0, 1, gossip.NewSecrets(0)))

		// Not deliverable in the same round.
		_, ok := p1.Receive()
		assert.False(t, ok)

		for _, err := range waitAll(context.Background(), p0, p1) {
			assert.NoError(t, err)
		}
		assert.Equal(t, uint64(1), e.Round())

		msg, ok := p1.Receive()
		require.True(t, ok)
		assert.Equal(t, 0, msg.Source)
		assert.Equal(t, 1, msg.Destination)
		assert.Equal(t, gossip.NewSecrets(0), msg.Secrets)

		_, ok = p0.Receive()
		assert.False(t, ok)
	})

	t.Run("one message per round", func(t *testing.T) {
		e := New(3)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)
		p2 := e.Endpoint(2)

		p0.Send(gossip.NewMessage(0, 2, gossip.NewSecrets(0)))
		p1.Send(gossip.NewMessage(1, 2, gossip.NewSecrets(1)))

		waitAll(context.Background(), p0, p1, p2)

		msg, ok := p2.Receive()
		require.True(t, ok)
		assert.Equal(t, 0, msg.Source)

		// The second message is queued for the next round.
		_, ok = p2.Receive()
		assert.False(t, ok)

		waitAll(context.Background(), p0, p1, p2)

		msg, ok = p2.Receive()
		require.True(t, ok)
		assert.Equal(t, 1, msg.Source)
	})

	t.Run("secrets copied", func(t *testing.T) {
		e := New(2)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)

		secrets := gossip.NewSecrets(0)
		msg := gossip.Message{Source: 0, Destination: 1, Secrets: secrets}
		p0.Send(msg)
		waitAll(context.Background(), p0, p1)

		received, ok := p1.Receive()
		require.True(t, ok)

		received.Secrets.Union(gossip.NewSecrets(1))
		assert.Equal(t, gossip.NewSecrets(0), secrets)
	})

	t.Run("drop to left peer", func(t *testing.T) {
		e := New(3)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)
		p2 := e.Endpoint(2)

		p0.Send(gossip.NewMessage(0, 1, gossip.NewSecrets(0)))
		p0.Send(gossip.NewMessage(0, 2, gossip.NewSecrets(0)))
		p1.Leave()

		waitAll(context.Background(), p0, p2)

		_, ok := p2.Receive()
		assert.True(t, ok)

		stats := e.Stats()
		assert.Equal(t, uint64(2), stats.Sent)
		assert.Equal(t, uint64(1), stats.Delivered)
		assert.Equal(t, uint64(1), stats.Dropped)
		assert.Equal(t, uint64(1), stats.Rounds)
		assert.Greater(t, stats.Bytes, uint64(0))
	})

	t.Run("codec error", func(t *testing.T) {
		metrics := NewMetrics()
		e := New(2, WithMetrics(metrics))
		e.codec = func(_ gossip.Message) (gossip.Message, int, error) {
			return gossip.Message{}, 0, errors.New("codec")
		}
		e.Endpoint(0).Send(gossip.NewMessage(0, 1, gossip.NewSecrets(0)))

		stats := e.Stats()
		assert.Equal(t, uint64(1), stats.Sent)
		assert.Equal(t, uint64(1), stats.Dropped)
		assert.Equal(t, uint64(0), stats.Bytes)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesSent))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesDropped))
	})

	t.Run("destination out of range", func(t *testing.T) {
		e := New(2)
		e.Endpoint(0).Send(gossip.NewMessage(0, 5, gossip.NewSecrets(0)))

		stats := e.Stats()
		assert.Equal(t, uint64(1), stats.Sent)
		assert.Equal(t, uint64(1), stats.Dropped)
	})
}

func TestEmulator_Rounds(t *testing.T) {
	t.Run("leave advances round", func(t *testing.T) {
		e := New(2)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)

		p1.Send(gossip.NewMessage(1, 0, gossip.NewSecrets(1)))

		errCh := make(chan error, 1)
		go func() {
			errCh <- p0.WaitForNextRound(context.Background())
		}()

		// The round can't advance until peer 1 either waits or leaves.
		select {
		case <-errCh:
			t.Fatal("round advanced with active peer")
		case <-time.After(time.Millisecond * 10):
		}

		p1.Leave()

		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("timeout")
		}
		assert.Equal(t, uint64(1), e.Round())
	})

	t.Run("stalled", func(t *testing.T) {
		e := New(2)
		p0 := e.Endpoint(0)
		p1 := e.Endpoint(1)

		for _, err := range waitAll(context.Background(), p0, p1) {
			assert.ErrorIs(t, err, ErrStalled)
		}

		// Once stalled, the medium stays stalled.
		assert.ErrorIs(t, p0.WaitForNextRound(context.Background()), ErrStalled)
	})

	t.Run("max rounds", func(t *testing.T) {
		e := New(1, WithMaxRounds(2))
		p0 := e.Endpoint(0)

		for i := 0; i != 2; i++ {
			p0.Send(gossip.NewMessage(0, 0, gossip.NewSecrets(0)))
			assert.NoError(t, p0.WaitForNextRound(context.Background()))
			_, ok := p0.Receive()
			assert.True(t, ok)
		}

		p0.Send(gossip.NewMessage(0, 0, gossip.NewSecrets(0)))
		assert.ErrorIs(t, p0.WaitForNextRound(context.Background()), ErrStalled)
	})

	t.Run("cancelled", func(t *testing.T) {
		e := New(2)
		p0 := e.Endpoint(0)

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
		defer cancel()

		assert.ErrorIs(t, p0.WaitForNextRound(ctx), context.DeadlineExceeded)
		assert.Equal(t, uint64(0), e.Round())
	})
}

func TestEmulator_Watcher(t *testing.T) {
	watcher := &fakeWatcher{}
	e := New(2, WithWatcher(watcher))
	p0 := e.Endpoint(0)
	p1 := e.Endpoint(1)

	p0.Send(gossip.NewMessage(0, 1, gossip.NewSecrets(0)))
	waitAll(context.Background(), p0, p1)
	_, ok := p1.Receive()
	require.True(t, ok)

	assert.Equal(t, []gossip.Message{
		gossip.NewMessage(0, 1, gossip.NewSecrets(0)),
	}, watcher.sent)
	assert.Equal(t, []uint64{1}, watcher.delivered)
	assert.Equal(t, []uint64{1}, watcher.rounds)
}

func TestEmulator_Metrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.Register(prometheus.NewRegistry())

	e := New(2, WithMetrics(metrics))
	p0 := e.Endpoint(0)
	p1 := e.Endpoint(1)

	p0.Send(gossip.NewMessage(0, 1, gossip.NewSecrets(0)))
	waitAll(context.Background(), p0, p1)
	_, ok := p1.Receive()
	require.True(t, ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesDelivered))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Rounds))
	assert.Equal(t, float64(e.Stats().Bytes), testutil.ToFloat64(metrics.BytesSent))
}

func TestCodec(t *testing.T) {
	msg := gossip.NewMessage(3, 4, gossip.NewSecrets(0, 1, 2, 3))

	b, err := encodeMessage(msg)
	require.NoError(t, err)

	decoded, err := decodeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)

	_, err = decodeMessage([]byte{})
	assert.Error(t, err)
}
