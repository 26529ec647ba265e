package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message types sent by the server besides the service events
const (
	MsgSubscribed MessageType = "subscribed"
	MsgError      MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket subscriptions to survey events
type Hub struct {
	// survey -> connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a WebSocket connection
type Connection struct {
	SurveyID string
	HostID   string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for surveyID, conns := range h.conns {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.conns, surveyID)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SurveyID] == nil {
				h.conns[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SurveyID][conn] = struct{}{}
			h.mu.Unlock()
			slog.Info("subscriber connected", "surveyId", conn.SurveyID, "hostId", conn.HostID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.SurveyID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.conns, conn.SurveyID)
					}
					slog.Info("subscriber disconnected", "surveyId", conn.SurveyID, "hostId", conn.HostID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, err := json.Marshal(msg.Message)
			if err != nil {
				slog.Error("failed to encode message", "surveyId", msg.SurveyID, "error", err)
				h.mu.RUnlock()
				continue
			}
			for conn := range h.conns[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Subscribers returns the number of connections listening to a survey
func (h *Hub) Subscribers(surveyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[surveyID])
}

// Close disconnects every subscriber and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// BroadcastToSurvey sends a message to every subscriber of a survey (implements service.Broadcaster)
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode payload", "surveyId", surveyID, "type", msgType, "error", err)
		return
	}
	msg := &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
