package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridge/medchat/pkg/logging"
)

// Handler exposes POST /api/book-appointment.
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

type bookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode booking request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	if err := h.service.Book(r.Context(), req); err != nil {
		if errors.Is(err, ErrMissingFields) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
			return
		}
		h.writeJSON(w, http.StatusInternalServerError, bookResponse{Error: "Failed to send confirmation emails"})
		return
	}

	h.writeJSON(w, http.StatusOK, bookResponse{Success: true, Message: "Appointment booked successfully"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
