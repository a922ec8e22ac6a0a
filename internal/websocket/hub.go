package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"doc-voicebot-be/internal/pkg/logger"
)

// Event names pushed to clients while a voice submission is processed.
const (
	EventTranscribing = "transcribing"
	EventTranscribed  = "transcribed"
	EventAnswering    = "answering"
	EventAnswered     = "answered"
	EventError        = "error"
)

type SessionEvent struct {
	Event     string                 `json:"event"`
	SessionId string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	At        time.Time              `json:"at"`
}

// Hub fans session events out to every connected client of that
// session (a session may have several tabs open).
type Hub struct {
	// SessionID -> connected clients.
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"session_id": client.SessionID})
		}
	}
}

// Broadcast pushes an event to all clients of one session. A client
// whose send buffer is full is skipped rather than blocking the
// processing path.
func (h *Hub) Broadcast(sessionID, event string, data map[string]interface{}) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(SessionEvent{
		Event:     event,
		SessionId: sessionID,
		Data:      data,
		At:        time.Now(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}
