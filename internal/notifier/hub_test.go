//go:build unit

package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"loanerdesk/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(buffer int) *Client {
	return &Client{send: make(chan []byte, buffer)}
}

func recvFrame(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case frame := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(frame, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast frame")
		return Message{}
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := newTestClient(4)
	second := newTestClient(4)
	hub.register <- first
	hub.register <- second

	view := &queries.ReservationView{ReservationID: "RES-42", Status: "reserved"}
	hub.Publish(ActionCreate, view)

	for _, c := range []*Client{first, second} {
		msg := recvFrame(t, c)
		assert.Equal(t, EventReservationUpdate, msg.Event)
		assert.Equal(t, ActionCreate, msg.Action)
		require.NotNil(t, msg.Data)
		assert.Equal(t, "RES-42", msg.Data.ReservationID)
	}
}

func TestHubDropsSlowViewer(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	healthy := newTestClient(4)
	slow := newTestClient(0) // full immediately
	hub.register <- healthy
	hub.register <- slow

	hub.Publish(ActionDelete, &queries.ReservationView{ReservationID: "RES-1"})

	msg := recvFrame(t, healthy)
	assert.Equal(t, ActionDelete, msg.Action)

	// The slow viewer's channel is closed when it is dropped.
	select {
	case _, ok := <-slow.send:
		assert.False(t, ok, "expected slow viewer channel to be closed")
	case <-time.After(time.Second):
		t.Fatal("slow viewer was not dropped")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := newTestClient(1)
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.send:
		assert.False(t, ok, "expected channel to be closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("unregister did not close the send channel")
	}
}
