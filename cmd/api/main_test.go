package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/pkg/logging"
)

func TestSetupMetricsExposesChatMetrics(t *testing.T) {
	handler, m := setupMetrics()
	require.NotNil(t, handler)
	require.NotNil(t, m)

	m.ObserveMessage("await_name", "ok")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "medchat_chat_messages_total")
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestBuildAppWithDefaults(t *testing.T) {
	cfg := &appconfig.Config{
		SessionBackend: "memory",
		SessionTTL:     time.Hour,
		EmailProvider:  "stub",
		LLMProvider:    "groq",
		LLMMaxTokens:   150,
		LLMTimeout:     time.Second,
	}
	a, err := buildApp(context.Background(), cfg, logging.NewWithWriter("error", &bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.Nil(t, a.redis)
	assert.Nil(t, a.pool)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"start","sessionId":"main-1"}`))
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "May I know your name?")
}
