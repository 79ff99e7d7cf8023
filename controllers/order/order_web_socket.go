package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventOrderCreated       = "commande.created"
	EventOrderStatusUpdated = "commande.status_updated"
	EventOrderDeleted       = "commande.deleted"
)

const (
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the dashboard.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Dashboards only listen; anything they send is discarded.
	maxMessageSize = 512

	// Events queued per client before it is considered too slow and dropped.
	sendBuffer = 16
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// client is one connected dashboard. Only writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans order events out to the admin dashboards connected over WebSocket.
// A nil *Hub is valid and drops every event.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub accepts upgrades from the given origins; "*" accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues the event for every client and never waits on the
// network. A client whose queue is full is disconnected.
func (h *Hub) Broadcast(eventType string, data any) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		zap.L().Error("failed to encode order event", zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			zap.L().Warn("dropping slow websocket client", zap.String("type", eventType))
			h.dropLocked(cl)
		}
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
}

// remove is safe to call more than once.
func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	h.dropLocked(cl)
	h.mu.Unlock()
}

// dropLocked closes the send queue; writePump then closes the connection.
func (h *Hub) dropLocked(cl *client) {
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// writePump drains the send queue and pings the dashboard so dead
// connections are noticed by the read deadline.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards incoming messages and returns once the peer goes away
// or stops answering pings.
func (cl *client) readPump() {
	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// OrderWebSocketHandler upgrades the request and keeps the client registered
// until it disconnects.
func OrderWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := hub.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		hub.add(cl)
		defer hub.remove(cl)

		go cl.writePump()
		cl.readPump()
	}
}
