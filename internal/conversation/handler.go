package conversation

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/pkg/logging"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the chat session id on requests and responses.
	SessionHeader = "X-Session-ID"
	// SessionCookie is the browser fallback for the session id.
	SessionCookie = "medchat_session"

	sessionCookieMaxAge = 24 * 60 * 60
)

// Handler wires HTTP requests to the conversation service.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	dialogue.Response
	SessionID string `json:"sessionId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode chat request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No message provided"})
		return
	}

	sessionID := ResolveSessionID(r, req.SessionID)
	setSession(w, sessionID)

	resp, err := h.service.Handle(r.Context(), sessionID, req.Message)
	if err != nil {
		h.logger.Error("failed to handle chat message", "error", err, "session_id", sessionID)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process message"})
		return
	}
	h.writeJSON(w, http.StatusOK, ChatResponse{Response: resp, SessionID: sessionID})
}

// History handles GET /api/chat/history?session=<id>.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	if sessionID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session is required"})
		return
	}
	messages, err := h.service.History(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load transcript", "error", err, "session_id", sessionID)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load history"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"sessionId": sessionID, "messages": messages})
}

// Directory handles GET /api/directory. Doctor addresses are never exposed.
func (h *Handler) Directory(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Directory())
}

// ResolveSessionID picks the session id from the body, the header, the
// cookie, or mints a new one, in that order.
func ResolveSessionID(r *http.Request, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value)
	}
	return uuid.NewString()
}

func setSession(w http.ResponseWriter, sessionID string) {
	w.Header().Set(SessionHeader, sessionID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
