package sse

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client represents a connected SSE client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types

	mu     sync.Mutex
	closed bool
}

// send delivers evt without blocking. It reports false when the buffer is full.
func (c *Client) send(evt Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.EventChannel <- evt:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.EventChannel)
	}
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub manages SSE client connections and event broadcasting.
// Broadcast fans out on the caller's goroutine; slow clients lose events instead of
// holding up the publisher.
type Hub struct {
	clients *xsync.Map[string, *Client]
	stopped atomic.Bool
	dropped atomic.Uint64
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{clients: xsync.NewMap[string, *Client]()}
}

// Stop disconnects every client. Later registrations are closed immediately.
func (h *Hub) Stop() {
	h.stopped.Store(true)
	h.clients.Range(func(id string, c *Client) bool {
		h.clients.Delete(id)
		c.close()
		return true
	})
}

// Register adds a new client to the hub
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	// Set up event filter if specific types requested
	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool)
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	if h.stopped.Load() {
		client.close()
		return client
	}
	h.clients.Store(client.ID, client)
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	if c, ok := h.clients.LoadAndDelete(clientID); ok {
		c.close()
	}
}

// Broadcast sends an event to all interested clients and returns how many got it
func (h *Hub) Broadcast(eventType string, payload interface{}) int {
	if h.stopped.Load() {
		return 0
	}

	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	delivered := 0
	h.clients.Range(func(_ string, c *Client) bool {
		if !c.wants(eventType) {
			return true
		}
		if c.send(evt) {
			delivered++
		} else {
			h.dropped.Add(1)
		}
		return true
	})
	return delivered
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return h.clients.Size()
}

// Dropped returns the number of events lost to full client buffers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
