package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"taskchat/internal/agent"
	"taskchat/internal/chatlog"
	"taskchat/internal/nlp"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect straight from the frontend dev server;
	// origin policy for the REST surface lives in the CORS middleware.
	CheckOrigin: func(*http.Request) bool { return true },
}

// client wraps a websocket connection with a write lock: gorilla allows
// only one concurrent writer, and broadcasts race with chat replies.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub fans task events out to every connected websocket client.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Broadcast sends v as JSON to every client. Clients that fail to accept
// the write are dropped.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.writeJSON(v); err != nil {
			log.Printf("ws broadcast: dropping client: %v", err)
			c.conn.Close()
			delete(h.clients, c)
		}
	}
}

// chatRequest is what the frontend sends over /ws/chat.
type chatRequest struct {
	Message             string       `json:"message"`
	ConversationHistory []agent.Turn `json:"conversation_history"`
}

type chatResponse struct {
	Type                string       `json:"type"`
	Response            string       `json:"response"`
	ConversationHistory []agent.Turn `json:"conversation_history"`
}

type taskEvent struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Task    interface{} `json:"task,omitempty"`
}

func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	cl := &client{conn: conn}
	s.hub.add(cl)
	defer func() {
		s.hub.remove(cl)
		conn.Close()
	}()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read: %v", err)
			}
			return
		}

		reply, hist, err := s.agent.Process(r.Context(), req.Message, req.ConversationHistory)
		if err != nil {
			log.Printf("ws chat: %v", err)
			reply = "An error occurred: " + err.Error()
			hist = req.ConversationHistory
		}
		s.record(r.Context(), req.Message, reply)

		if err := cl.writeJSON(chatResponse{
			Type:                "agent_response",
			Response:            reply,
			ConversationHistory: hist,
		}); err != nil {
			log.Printf("ws write: %v", err)
			return
		}

		// Every turn may have changed the task list; tell all clients
		// to refresh.
		s.hub.Broadcast(taskEvent{Type: "task_list_update", Message: "Task list updated"})
	}
}

func (s *Server) record(_ context.Context, userMessage, reply string) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendInteraction(chatlog.Event{
		Timestamp:         time.Now().UTC(),
		UserMessage:       userMessage,
		Intent:            string(nlp.Classify(userMessage)),
		AssistantResponse: reply,
	})
	if err != nil {
		log.Printf("chat log: %v", err)
	}
}
