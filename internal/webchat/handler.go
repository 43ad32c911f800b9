// Package webchat serves the chat engine over a WebSocket.
package webchat

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/carebridge/medchat/internal/conversation"
	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/pkg/logging"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const historyLimit = 50

// ChatService is the part of conversation.Service the socket needs.
type ChatService interface {
	Handle(ctx context.Context, sessionID, message string) (dialogue.Response, error)
	History(ctx context.Context, sessionID string) ([]conversation.TranscriptMessage, error)
}

// Handler manages WebSocket connections, one per chat session.
type Handler struct {
	chat   ChatService
	logger *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn
}

type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what the widget receives.
type OutboundMessage struct {
	Type      string             `json:"type"` // "session", "history", "typing", "reply", "pong", "error"
	Text      string             `json:"text,omitempty"`
	SessionID string             `json:"sessionId,omitempty"`
	Response  *dialogue.Response `json:"response,omitempty"`
	Messages  []HistoryMessage   `json:"messages,omitempty"`
}

type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func NewHandler(chat ChatService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		chat:     chat,
		logger:   logger,
		sessions: make(map[string]*wsConn),
	}
}

// HandleWebSocket serves GET /api/chat/ws?session=<id>.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	ctx := r.Context()
	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	wsc := &wsConn{conn: conn}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
	}()

	wsc.send(OutboundMessage{Type: "session", SessionID: sessionID})
	h.sendHistory(ctx, wsc, sessionID)

	h.logger.Info("webchat: connection opened", "session_id", sessionID)
	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			wsc.send(OutboundMessage{Type: "pong"})
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				wsc.send(OutboundMessage{Type: "error", Text: "No message provided"})
				continue
			}
			h.processMessage(ctx, wsc, sessionID, msg.Text)
		}
	}
}

func (h *Handler) sendHistory(ctx context.Context, wsc *wsConn, sessionID string) {
	msgs, err := h.chat.History(ctx, sessionID)
	if err != nil {
		h.logger.Warn("webchat: failed to load history", "session_id", sessionID, "error", err)
		return
	}
	if len(msgs) == 0 {
		return
	}
	if len(msgs) > historyLimit {
		msgs = msgs[len(msgs)-historyLimit:]
	}
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{
			Role:      m.Role,
			Text:      m.Text,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	wsc.send(OutboundMessage{Type: "history", Messages: history})
}

// processMessage answers on the socket that asked; a newer socket for the
// same session only sees pushes.
func (h *Handler) processMessage(ctx context.Context, wsc *wsConn, sessionID, text string) {
	wsc.send(OutboundMessage{Type: "typing"})

	resp, err := h.chat.Handle(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("webchat: failed to handle message", "error", err, "session_id", sessionID)
		wsc.send(OutboundMessage{
			Type: "error",
			Text: "Sorry, something went wrong. Please try again.",
		})
		return
	}
	wsc.send(OutboundMessage{Type: "reply", Response: &resp})
}

// SendToSession pushes msg to the session's open socket, if any.
func (h *Handler) SendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	wsc.send(msg)
}

// ActiveSessions reports how many sockets are open.
func (h *Handler) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (c *wsConn) send(msg OutboundMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = websocket.JSON.Send(c.conn, msg)
}
