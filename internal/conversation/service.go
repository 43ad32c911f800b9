// Package conversation runs chat messages through the dialogue engine with
// per-session state, transcripts and metrics, and serves them over HTTP.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/internal/directory"
	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/internal/session"
	"github.com/carebridge/medchat/pkg/logging"
)

// ErrSessionRequired is returned when Handle is called without a session id.
var ErrSessionRequired = errors.New("conversation: session id required")

// Service serializes messages per session: load state, run the engine, save.
type Service struct {
	engine      *dialogue.Engine
	store       session.Store
	transcripts *TranscriptStore
	metrics     *metrics.ChatMetrics
	logger      *logging.Logger
	locks       *sessionLocks
	locker      session.Locker
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLocker adds a cross-process session lock, taken after the in-process
// one. Deployments with more than one replica sharing a session store need it.
func WithLocker(l session.Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func NewService(engine *dialogue.Engine, store session.Store, transcripts *TranscriptStore, m *metrics.ChatMetrics, logger *logging.Logger, opts ...Option) *Service {
	if engine == nil {
		panic("conversation: dialogue engine required")
	}
	if store == nil {
		panic("conversation: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc := &Service{
		engine:      engine,
		store:       store,
		transcripts: transcripts,
		metrics:     m,
		logger:      logger,
		locks:       newSessionLocks(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Handle processes one message for sessionID. Only store failures are
// returned; everything else is expressed in the response.
func (s *Service) Handle(ctx context.Context, sessionID, message string) (dialogue.Response, error) {
	if sessionID == "" {
		return dialogue.Response{}, ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	if s.locker != nil {
		release, err := s.locker.Lock(ctx, sessionID)
		if err != nil {
			s.metrics.ObserveMessage("unknown", "lock_error")
			return dialogue.Response{}, fmt.Errorf("conversation: lock session: %w", err)
		}
		defer release()
	}

	start := time.Now()
	logger := s.logger.WithSession(sessionID)

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.metrics.ObserveMessage("unknown", "store_error")
		return dialogue.Response{}, fmt.Errorf("conversation: load session: %w", err)
	}
	from := state.Stage

	resp := s.engine.Handle(ctx, &state, message)

	if resp.Silent {
		err = s.store.Delete(ctx, sessionID)
	} else {
		err = s.store.Save(ctx, sessionID, state)
	}
	if err != nil {
		s.metrics.ObserveMessage(state.Stage.String(), "store_error")
		return dialogue.Response{}, fmt.Errorf("conversation: save session: %w", err)
	}

	if !resp.Silent {
		if err := s.transcripts.Append(ctx, sessionID,
			TranscriptMessage{Role: RoleUser, Text: message, Stage: from.String()},
			TranscriptMessage{Role: RoleAssistant, Text: resp.Reply, Stage: state.Stage.String()},
		); err != nil {
			logger.Warn("failed to append transcript", "error", err)
		}
	}

	s.metrics.ObserveTransition(from.String(), state.Stage.String())
	s.metrics.ObserveMessage(state.Stage.String(), "ok")
	s.metrics.ObserveHandleLatency(time.Since(start))
	logger.Debug("chat message handled",
		"from_stage", from.String(),
		"stage", state.Stage.String(),
		"buttons", len(resp.Buttons),
	)
	return resp, nil
}

// History returns the stored transcript for sessionID, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]TranscriptMessage, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.transcripts.List(ctx, sessionID, 0)
}

// Directory exposes the engine's reference data to transports.
func (s *Service) Directory() *directory.Directory {
	return s.engine.Directory()
}
