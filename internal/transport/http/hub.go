package http

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"quiz-battle-service/internal/app"
)

// wsConn is the subset of *websocket.Conn the hub needs; narrowed so tests
// can register fake connections.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub owns the registry of connected clients and fans battle events out to
// all of them. There is no per-battle scoping: every client sees every event,
// matching the flat broadcast model of the battle channel.
// It implements app.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*hubClient
}

type hubClient struct {
	id      string
	conn    wsConn
	send    chan []byte
	closing sync.Once
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*hubClient)}
}

// Register adds a connection and starts its writer pump. The returned id is
// the handle for Deregister.
func (h *Hub) Register(conn wsConn) string {
	client := &hubClient{
		id:   "client_" + uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()

	go h.writePump(client)
	return client.id
}

// Deregister removes a client. Safe to call more than once.
func (h *Hub) Deregister(clientID string) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
		client.closing.Do(func() { close(client.send) })
	}
	h.mu.Unlock()
}

// Broadcast serializes the event once and pushes it to every registered
// client. Clients whose send buffer is full are dropped rather than blocking
// the rest of the fan-out.
func (h *Hub) Broadcast(event app.BattleEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("marshal battle event")
		return
	}

	var slow []string
	h.mu.RLock()
	for id, client := range h.clients {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		log.Warn().Str("client_id", id).Msg("dropping slow battle client")
		h.Deregister(id)
	}
}

// ClientCount reports how many clients are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writePump drains the client's send channel onto its connection. A write
// failure deregisters the client; channel close ends the pump.
func (h *Hub) writePump(client *hubClient) {
	defer client.conn.Close()
	for payload := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Debug().Err(err).Str("client_id", client.id).Msg("battle client write failed")
			h.Deregister(client.id)
			return
		}
	}
}
