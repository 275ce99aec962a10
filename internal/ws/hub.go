package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 256)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// TrySend queues data for the client's write pump. The message is
// dropped when the client is closed or its buffer is full; holding the
// same mutex as Close means a concurrent close cannot turn the send
// into a write on a closed channel.
func (c *Client) TrySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Room is one conversation channel. Both participants derive the same
// channel name, so no discovery step is needed to meet here.
type Room struct {
	Channel string
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewRoom(channel string) *Room {
	return &Room{Channel: channel, clients: make(map[*Client]struct{})}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends payload to every client in the room except from
// (pass nil to reach everyone). Slow clients are skipped rather than
// blocked on.
func (r *Room) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range clients {
		c.TrySend(data)
	}
}

// Hub holds all conversation rooms by channel name.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

func (h *Hub) GetOrCreateRoom(channel string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[channel]; ok {
		return r
	}
	r := NewRoom(channel)
	h.rooms[channel] = r
	return r
}

func (h *Hub) GetRoom(channel string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[channel]
}

// Publish broadcasts to a channel's room if anyone is subscribed.
// A missing room is not an error; the database stays the source of
// truth and offline peers catch up over HTTP.
func (h *Hub) Publish(channel string, payload interface{}) {
	if r := h.GetRoom(channel); r != nil {
		r.Broadcast(nil, payload)
	}
}

func (h *Hub) RemoveRoomIfEmpty(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[channel]; ok && r.ClientCount() == 0 {
		delete(h.rooms, channel)
	}
}
