package kds

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/foodplate-dashboard/models"
)

type fakeConn struct {
	written  [][]byte
	failing  bool
	closed   bool
	deadline time.Time
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.deadline = t
	return nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	if messageType != websocket.TextMessage {
		return errors.New("unexpected message type")
	}
	if c.failing {
		return errors.New("broken pipe")
	}
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestHub_FoodsChangedBroadcasts(t *testing.T) {
	hub := NewHub()
	admin := &fakeConn{}
	kitchen := &fakeConn{}
	hub.RegisterClient(admin, "admin")
	hub.RegisterClient(kitchen, "kitchen")

	hub.FoodsChanged([]models.FoodPlate{{ID: 1, Name: "Pizza", Available: true}})

	for _, c := range []*fakeConn{admin, kitchen} {
		require.Len(t, c.written, 1)

		var msg struct {
			Event string             `json:"event"`
			Data  []models.FoodPlate `json:"data"`
		}
		require.NoError(t, json.Unmarshal(c.written[0], &msg))
		assert.Equal(t, EventFoodsUpdate, msg.Event)
		assert.Equal(t, []models.FoodPlate{{ID: 1, Name: "Pizza", Available: true}}, msg.Data)
	}
}

func TestHub_DropsBrokenClients(t *testing.T) {
	hub := NewHub()
	good := &fakeConn{}
	broken := &fakeConn{failing: true}
	hub.RegisterClient(good, "admin")
	hub.RegisterClient(broken, "kitchen")

	hub.Broadcast(Message{Event: EventFoodsUpdate, Data: nil})

	assert.Equal(t, 1, hub.ClientCount())
	assert.True(t, broken.closed)
	assert.False(t, good.closed)
	assert.Len(t, good.written, 1)
}

func TestHub_UnregisterClient(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	hub.RegisterClient(conn, "admin")

	hub.UnregisterClient(conn)
	hub.UnregisterClient(conn)

	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, conn.closed)
}

// stalledConn never drains; a write only returns when its deadline passes.
type stalledConn struct {
	fakeConn
}

func (c *stalledConn) WriteMessage(messageType int, data []byte) error {
	if c.deadline.IsZero() {
		select {}
	}
	time.Sleep(time.Until(c.deadline))
	return errors.New("i/o timeout")
}

func TestHub_DropsStalledClient(t *testing.T) {
	hub := NewHub()
	hub.WriteWait = 50 * time.Millisecond
	good := &fakeConn{}
	stalled := &stalledConn{}
	hub.RegisterClient(good, "admin")
	hub.RegisterClient(stalled, "kitchen")

	done := make(chan struct{})
	go func() {
		hub.FoodsChanged([]models.FoodPlate{{ID: 1}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked behind a client that stopped reading")
	}

	assert.Equal(t, 1, hub.ClientCount())
	assert.True(t, stalled.closed)
	assert.Len(t, good.written, 1)
	assert.False(t, good.deadline.IsZero())
}
