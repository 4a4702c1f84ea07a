package session

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const sessionTTL = 24 * time.Hour

// Establisher binds a resolved account to the browser session after a
// successful handshake. Establish always overwrites: re-login with the
// same or a different account simply replaces the principal.
type Establisher struct {
	store Store
	opts  CookieOptions
}

func NewEstablisher(store Store, opts CookieOptions) *Establisher {
	return &Establisher{store: store, opts: opts}
}

// Establish creates a session record for accountID and issues the
// session cookie.
func (e *Establisher) Establish(ctx context.Context, w http.ResponseWriter, accountID string) error {
	sessionID, err := GenerateID()
	if err != nil {
		return err
	}

	now := time.Now()
	expiresAt := now.Add(sessionTTL)

	s := Session{
		SessionID: sessionID,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := e.store.Create(ctx, s); err != nil {
		return fmt.Errorf("session: failed to persist: %w", err)
	}

	SetCookie(w, sessionID, expiresAt, e.opts)

	return nil
}
