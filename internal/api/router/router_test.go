package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/medchat/internal/booking"
	"github.com/carebridge/medchat/internal/conversation"
	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/internal/directory"
	"github.com/carebridge/medchat/internal/notify"
	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/internal/session"
	"github.com/carebridge/medchat/internal/webchat"
	"github.com/carebridge/medchat/pkg/logging"
)

func newTestRouter(t *testing.T, staticDir string) http.Handler {
	t.Helper()

	logger := logging.NewWithWriter("error", &bytes.Buffer{})
	reg := prometheus.NewRegistry()
	m := metrics.NewChatMetrics(reg)

	bookingSvc := booking.NewService(notify.NewStubEmailSender(logger), logger, booking.WithMetrics(m))
	engine := dialogue.NewEngine(directory.Default(), conversation.BookingAdapter{Service: bookingSvc}, nil, logger)
	chat := conversation.NewService(engine, session.NewMemoryStore(time.Hour), nil, m, logger)

	return New(&Config{
		Logger:             logger,
		ChatHandler:        conversation.NewHandler(chat, logger),
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		WebChat:            webchat.NewHandler(chat, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"https://clinic.example"},
		StaticDir:          staticDir,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRouterChatEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	body, err := json.Marshal(conversation.ChatRequest{Message: "start", SessionID: "router-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://clinic.example")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "router-1", rr.Header().Get("X-Session-ID"))
	assert.Equal(t, "https://clinic.example", rr.Header().Get("Access-Control-Allow-Origin"))

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "How can I assist you today? May I know your name?", resp["reply"])
	assert.Equal(t, "router-1", resp["sessionId"])
}

func TestRouterDirectoryHidesEmails(t *testing.T) {
	router := newTestRouter(t, "")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/directory", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cardiology")
	assert.NotContains(t, rr.Body.String(), "@example.com")
}

func TestRouterBookAppointment(t *testing.T) {
	router := newTestRouter(t, "")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing fields", `{"patientEmail":"p@example.com"}`, http.StatusBadRequest},
		{"complete", `{"patientEmail":"p@example.com","doctorEmail":"d@example.com","doctorName":"Dr. Somasekar","timeSlot":"10:00 AM"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", bytes.NewBufferString(tt.body))
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	chat := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"start","sessionId":"m-1"}`))
	router.ServeHTTP(httptest.NewRecorder(), chat)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "medchat_chat_messages_total")
}

func TestRouterStaticFallsBackToIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>widget</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('x')"), 0o600))
	router := newTestRouter(t, dir)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "console.log")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/book/somewhere", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "widget")
}
