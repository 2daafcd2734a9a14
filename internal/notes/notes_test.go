package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPair(t *testing.T) (*Publisher, *Listener) {
	t.Helper()

	listener, err := NewListener("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	publisher, err := NewPublisher(listener.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { publisher.Close() })

	return publisher, listener
}

func waitRecv(t *testing.T, listener *Listener) int {
	t.Helper()

	var slide int
	require.Eventually(t, func() bool {
		got, ok := listener.TryRecv()
		if ok {
			slide = got
		}
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	return slide
}

func TestPublishAndReceive(t *testing.T) {
	t.Parallel()

	publisher, listener := newPair(t)

	publisher.GoToSlide(4)
	assert.Equal(t, 4, waitRecv(t, listener))

	// The event is consumed: nothing further is pending.
	_, ok := listener.TryRecv()
	assert.False(t, ok)
}

func TestTryRecvEmptyDoesNotBlock(t *testing.T) {
	t.Parallel()

	_, listener := newPair(t)

	done := make(chan struct{})
	go func() {
		listener.TryRecv()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TryRecv blocked")
	}
}

func TestLatestEventWins(t *testing.T) {
	t.Parallel()

	publisher, listener := newPair(t)

	publisher.GoToSlide(2)
	require.Equal(t, 2, waitRecv(t, listener))

	// With nobody draining, a burst collapses to its last event.
	publisher.GoToSlide(5)
	require.Equal(t, 5, waitRecv(t, listener))
	publisher.GoToSlide(6)
	publisher.GoToSlide(9)
	assert.Eventually(t, func() bool {
		slide, ok := listener.TryRecv()
		return ok && slide == 9
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMalformedEventIgnored(t *testing.T) {
	t.Parallel()

	publisher, listener := newPair(t)

	if _, err := publisher.conn.Write([]byte("not json")); err != nil {
		t.Skip("loopback write failed")
	}
	publisher.GoToSlide(3)
	assert.Equal(t, 3, waitRecv(t, listener))
}

func TestNewListenerBadAddress(t *testing.T) {
	t.Parallel()

	_, err := NewListener("not-an-address")
	assert.Error(t, err)
}
