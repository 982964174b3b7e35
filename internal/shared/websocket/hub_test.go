package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.ID)
		return nil, false
	}
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	a := NewClient(hub, nil, "a", "room-1", "alice")
	b := NewClient(hub, nil, "b", "room-1", "bob")
	other := NewClient(hub, nil, "c", "room-2", "carol")
	for _, c := range []*Client{a, b, other} {
		require.True(t, hub.RegisterClient(c))
	}

	hub.Broadcast("room-1", []byte(`{"type":"ping"}`))

	for _, c := range []*Client{a, b} {
		msg, ok := receive(t, c)
		require.True(t, ok)
		require.JSONEq(t, `{"type":"ping"}`, string(msg))
	}
	require.Len(t, other.Send, 0)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	c := NewClient(hub, nil, "a", "room-1", "alice")
	require.True(t, hub.RegisterClient(c))
	hub.UnregisterClient(c)
	// a second unregister must not close the channel twice
	hub.UnregisterClient(c)

	_, ok := receive(t, c)
	require.False(t, ok)
	require.False(t, c.SendTo([]byte("late")))
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := NewClient(hub, nil, "a", "room-1", "alice")
	require.True(t, hub.RegisterClient(c))
	// the broadcast is processed after the registration
	hub.Broadcast("room-1", []byte("hello"))
	msg, ok := receive(t, c)
	require.True(t, ok)
	require.Equal(t, "hello", string(msg))

	cancel()
	<-done
	_, ok = receive(t, c)
	require.False(t, ok)
}

func TestClient_SendToFullQueue(t *testing.T) {
	c := NewClient(NewHub(), nil, "a", "room-1", "alice")
	for i := 0; i < SendBufferSize; i++ {
		require.True(t, c.SendTo([]byte("x")))
	}
	require.False(t, c.SendTo([]byte("overflow")))
}

func TestClient_SendToRacesWithUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	c := NewClient(hub, nil, "a", "room-1", "alice")
	require.True(t, hub.RegisterClient(c))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				c.SendTo([]byte("x"))
			}
		}()
	}
	hub.UnregisterClient(c)
	wg.Wait()

	// drains until the hub closes the queue
	for range c.Send {
	}
	require.False(t, c.SendTo([]byte("late")))
}
