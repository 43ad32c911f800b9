// Package session keeps one dialogue.State per chat session id.
package session

import (
	"context"
	"errors"

	"github.com/carebridge/medchat/internal/dialogue"
)

// ErrSessionIDRequired is returned when a store call has no session id.
var ErrSessionIDRequired = errors.New("session: session id required")

// Store persists conversation state by session id. Load returns the zero
// state for sessions it has never seen or that have expired.
type Store interface {
	Load(ctx context.Context, sessionID string) (dialogue.State, error)
	Save(ctx context.Context, sessionID string, state dialogue.State) error
	Delete(ctx context.Context, sessionID string) error
}
