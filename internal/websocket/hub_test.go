package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestHub() *Hub {
	return NewHub(nil, noopLogger{})
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestSendReachesAllUserConnections(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	a := NewClient(hub, nil, userID)
	b := NewClient(hub, nil, userID)
	hub.register(a)
	hub.register(b)

	hub.Send(userID, []byte("frame"))

	assert.Equal(t, []byte("frame"), receive(t, a))
	assert.Equal(t, []byte("frame"), receive(t, b))
}

func TestSendDoesNotCrossUsers(t *testing.T) {
	hub := newTestHub()

	alice := NewClient(hub, nil, uuid.New())
	bob := NewClient(hub, nil, uuid.New())
	hub.register(alice)
	hub.register(bob)

	hub.Send(alice.UserID(), []byte("private"))

	assert.Equal(t, []byte("private"), receive(t, alice))
	select {
	case data := <-bob.send:
		t.Fatalf("bob received a frame meant for alice: %q", data)
	default:
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	c := NewClient(hub, nil, userID)
	hub.register(c)
	hub.unregister(c)

	// The send channel is closed and further sends are dropped, not
	// panics.
	_, open := <-c.send
	assert.False(t, open)
	hub.Send(userID, []byte("late"))
}

func TestCloseUserTearsDownEverything(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	a := NewClient(hub, nil, userID)
	b := NewClient(hub, nil, userID)
	hub.register(a)
	hub.register(b)

	hub.CloseUser(userID)

	for _, c := range []*Client{a, b} {
		_, open := <-c.send
		assert.False(t, open)
	}

	// A frame sent after teardown goes nowhere.
	hub.Send(userID, []byte("after logout"))
}

func TestCloseUserIsIdempotent(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	c := NewClient(hub, nil, userID)
	hub.register(c)

	hub.CloseUser(userID)
	hub.CloseUser(userID)

	// Unregister after CloseUser must also be a no-op.
	hub.unregister(c)
}

func TestFramesSentBeforeServingAreBuffered(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	c := NewClient(hub, nil, userID)
	c.Register()

	// A mutation landing while the initial snapshots are still being
	// queried must not be lost; the frame waits in the send buffer
	// until the write pump starts draining.
	hub.Send(userID, []byte("early change"))

	assert.Equal(t, []byte("early change"), receive(t, c))
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := newTestHub()

	a := NewClient(hub, nil, uuid.New())
	b := NewClient(hub, nil, uuid.New())
	hub.register(a)
	hub.register(b)

	hub.Broadcast([]byte("announcement"))

	require.Equal(t, []byte("announcement"), receive(t, a))
	require.Equal(t, []byte("announcement"), receive(t, b))
}
