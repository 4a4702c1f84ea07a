// Package redirect carries the post-login destination across the
// external provider round trip using a signed browser cookie.
package redirect

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	// CookieName is the fixed key for the post-login redirect target.
	CookieName = "social_login_redirect"

	// TTL bounds how long a stashed destination stays valid. The
	// cookie is never explicitly cleared; it expires naturally or is
	// overwritten on the next login attempt.
	TTL = 86400 * time.Second
)

// Manager writes and reads the redirect cookie. Values are signed with
// HMAC-SHA256 so a tampered destination is treated as absent.
type Manager struct {
	secret []byte
	path   string
	domain string
}

func NewManager(signingKey, path, domain string) *Manager {
	if path == "" {
		path = "/"
	}
	return &Manager{
		secret: []byte(signingKey),
		path:   path,
		domain: domain,
	}
}

// Stash stores destination for retrieval after the handshake. Empty
// destinations are a no-op: no cookie is written. The Secure flag
// mirrors the originating request's scheme.
func (m *Manager) Stash(w http.ResponseWriter, destination string, secure bool) {
	if destination == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.encode(destination),
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Retrieve returns the stashed destination, or ok=false when no
// cookie was set or its signature does not verify.
func (m *Manager) Retrieve(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return m.decode(cookie.Value)
}

func (m *Manager) sign(destination string) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(destination))
	return mac.Sum(nil)
}

func (m *Manager) encode(destination string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(destination))
	sig := base64.RawURLEncoding.EncodeToString(m.sign(destination))
	return payload + "." + sig
}

func (m *Manager) decode(value string) (string, bool) {
	payload, sig, found := strings.Cut(value, ".")
	if !found {
		return "", false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}

	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(want, m.sign(string(raw))) {
		return "", false
	}

	return string(raw), true
}
