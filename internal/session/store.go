package session

import (
	"context"
	"time"
)

// Session holds the authenticated principal for one browser session.
// Exactly one account is bound per session; a later login overwrites
// the binding rather than merging it.
type Session struct {
	SessionID string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
