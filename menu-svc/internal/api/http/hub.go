package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait = 10 * time.Second

	// sendBuffer is how many menu updates a client may fall behind before
	// it is disconnected.
	sendBuffer = 8
)

type menuMessage struct {
	Type string      `json:"type"`
	Menu domain.Menu `json:"menu"`
}

// client owns one connection. Only its writer goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
	// closeMsg is set before send is closed and read by the writer after.
	closeMsg []byte
}

// Hub pushes the full menu to every connected browser whenever it changes.
type Hub struct {
	upgrader websocket.Upgrader
	log      logrus.FieldLogger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log:     log.WithField("component", "hub"),
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the request, sends the current menu and then blocks until
// the client goes away. The client is registered before current is read, so
// no change can slip between the first message and the broadcasts. current
// runs with the hub locked and must not call back into it.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, current func() domain.Menu) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	data, err := encodeMenuMessage(current())
	if err == nil {
		c.send <- data
	} else {
		h.log.WithError(err).Error("encoding current menu failed")
		h.removeLocked(c, nil)
	}
	h.mu.Unlock()

	go h.writePump(c)
	if err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// Broadcast matches the MenuState subscriber signature. It never waits on a
// connection: clients whose buffer is full are dropped.
func (h *Hub) Broadcast(menu domain.Menu) {
	data, err := encodeMenuMessage(menu)
	if err != nil {
		h.log.WithError(err).Error("encoding menu broadcast failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("websocket client fell behind, dropping")
			h.removeLocked(c, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"))
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.WithError(err).Debug("websocket write failed")
			h.remove(c)
			return
		}
	}
	if c.closeMsg != nil {
		c.conn.WriteControl(websocket.CloseMessage, c.closeMsg, time.Now().Add(time.Second))
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c, nil)
	h.mu.Unlock()
}

// removeLocked unregisters c and stops its writer; h.mu must be held.
func (h *Hub) removeLocked(c *client, closeMsg []byte) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.closeMsg = closeMsg
	close(c.send)
}

func encodeMenuMessage(menu domain.Menu) ([]byte, error) {
	if menu == nil {
		menu = domain.Menu{}
	}
	return json.Marshal(menuMessage{Type: domain.EventMenuUpdated, Menu: menu})
}
