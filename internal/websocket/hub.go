package websocket

import (
	"encoding/json"
	"sync"
)

// LedgerEvent is pushed to the owning principal's dashboard whenever a
// request is recorded or its status advances.
type LedgerEvent struct {
	RequestID string  `json:"requestId"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Amount    string  `json:"amount"`
	Currency  *string `json:"currency,omitempty"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(ownerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ownerID] == nil {
		h.clients[ownerID] = make(map[*Client]struct{})
	}
	h.clients[ownerID][client] = struct{}{}
}

func (h *Hub) Unregister(ownerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ownerID] == nil {
		return
	}
	delete(h.clients[ownerID], client)
	if len(h.clients[ownerID]) == 0 {
		delete(h.clients, ownerID)
	}
}

// BroadcastEvent delivers the event to every open dashboard session of the
// owner. Slow clients are skipped rather than blocking the caller.
func (h *Hub) BroadcastEvent(ownerID string, event LedgerEvent) {
	payload, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[ownerID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
