// Package hub pushes live updates to connected dashboards over websockets.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/catering-boq/utils"
)

// Event types
const (
	EventCatalogUpdate = "catalog_update"
	EventLowStock      = "low_stock"
	EventCreated       = "event_created"
	EventDeleted       = "event_deleted"
	EventCustomer      = "customer_update"
)

const writeWait = 10 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Broadcaster is what the rest of the service needs from the hub.
type Broadcaster interface {
	Broadcast(msg Message)
}

// Hub tracks connected clients and the role each one authenticated with.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func New() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Serve registers conn and blocks reading from it until the client goes away. Incoming
// messages are discarded; the channel is push only.
func (h *Hub) Serve(conn *websocket.Conn, role string) {
	h.Register(conn, role)
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends msg to every client. Clients that cannot be written to are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("hub: marshal %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Warnf("hub: dropping %s client: %v", role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.Debugf("hub: broadcast %s to %d clients", msg.Event, len(h.clients))
}

// Nop discards every message. Used when live updates are not wired, e.g. in tests.
type Nop struct{}

func (Nop) Broadcast(Message) {}
