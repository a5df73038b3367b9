package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
)

// Message is the envelope sent to subscribers
type Message struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to connected SSE clients. It implements Publisher;
// slow clients are dropped rather than blocking the check pipeline.
type Hub struct {
	clients map[string]*client
	mutex   sync.RWMutex
	logger  *logger.Logger
}

type client struct {
	id        string
	messageCh chan []byte
}

// NewHub creates a new event hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  log,
	}
}

// Publish broadcasts an event to every connected client
func (h *Hub) Publish(event string, payload interface{}) {
	msg := Message{
		Event:     event,
		Data:      payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to marshal event")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, c := range h.clients {
		select {
		case c.messageCh <- data:
		default:
			// client buffer full; at-most-once delivery, drop it
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	h.clients[c.id] = c
	h.mutex.Unlock()

	h.logger.WithFields(map[string]interface{}{
		"client_id": c.id,
	}).Info("Event stream client connected")
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	delete(h.clients, c.id)
	h.mutex.Unlock()

	h.logger.WithFields(map[string]interface{}{
		"client_id": c.id,
	}).Info("Event stream client disconnected")
}

// ServeHTTP streams events to one client over Server-Sent Events
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := &client{
		id:        uuid.New().String(),
		messageCh: make(chan []byte, 256),
	}

	h.register(c)
	defer h.unregister(c)

	init, _ := json.Marshal(Message{
		Event:     "connected",
		Data:      map[string]interface{}{"client_id": c.id},
		Timestamp: time.Now(),
	})
	w.Write([]byte("data: " + string(init) + "\n\n"))
	flusher.Flush()

	for {
		select {
		case message := <-c.messageCh:
			w.Write([]byte("data: " + string(message) + "\n\n"))
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
