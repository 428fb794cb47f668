package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/foodplate-dashboard/models"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

// Event types
const (
	EventFoodsUpdate = "foods_update"
)

// DefaultWriteWait bounds each websocket write; a screen that stops reading
// is dropped once it is exceeded.
const DefaultWriteWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub holds every open dashboard screen (the admin page and kitchen displays)
// and pushes menu changes to them.
type Hub struct {
	WriteWait time.Duration

	clients map[Conn]string // conn -> screen name
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		WriteWait: DefaultWriteWait,
		clients:   make(map[Conn]string),
	}
}

// RegisterClient adds conn under the given screen name.
func (h *Hub) RegisterClient(conn Conn, screen string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = screen
}

// UnregisterClient drops conn and closes it.
func (h *Hub) UnregisterClient(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.unregisterLocked(conn)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// FoodsChanged broadcasts the current menu so screens re-render.
func (h *Hub) FoodsChanged(foods []models.FoodPlate) {
	h.Broadcast(Message{
		Event: EventFoodsUpdate,
		Data:  foods,
	})
}

// Broadcast sends msg to every client. Clients that fail a write are dropped.
func (h *Hub) Broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":   msg.Event,
		"clients": len(h.clients),
	}).Debug("broadcasting")

	for conn, screen := range h.clients {
		if err := h.write(conn, data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("screen", screen).Warn("dropping dashboard client")
			h.unregisterLocked(conn)
		}
	}
}

func (h *Hub) write(conn Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.WriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) unregisterLocked(conn Conn) {
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}
