package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
)

// Event is one real-time update pushed to a tenant's dashboard clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type bookingPayload struct {
	BookingID      int64     `json:"bookingId"`
	ProfessionalID int64     `json:"professionalId"`
	ServiceID      int64     `json:"serviceId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Status         string    `json:"status"`
}

// connection is a single dashboard WebSocket client, scoped to one tenant.
type connection struct {
	tenantID int64
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans booking lifecycle events out to connected dashboard clients of the
// same tenant. Slow clients are skipped, never awaited.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]struct{})}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(tenantID int64, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.tenantID != tenantID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// client too slow, drop the event
		}
	}
}

func payloadOf(b *domain.Booking) bookingPayload {
	return bookingPayload{
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ServiceID:      b.ServiceID,
		ScheduledAt:    b.ScheduledAt,
		Status:         string(b.Status),
	}
}

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.broadcast(b.TenantID, Event{Type: EventBookingCreated, Payload: payloadOf(b)})
}

func (h *Hub) BookingStatusChanged(b *domain.Booking) {
	h.broadcast(b.TenantID, Event{Type: EventBookingStatusChanged, Payload: payloadOf(b)})
}

// ServeWS runs the connection's pumps; blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, tenantID int64) {
	c := &connection{
		tenantID: tenantID,
		conn:     conn,
		send:     make(chan []byte, 64),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client frames; the feed is one-way. It exists to notice
// disconnects and answer pings.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
