package provider

import (
	"net/http"

	"github.com/LuizSantos1/social-login/internal/identity"
)

// Config is the per-store configuration of one social provider, read
// fresh from scoped configuration on every flow invocation.
type Config struct {
	Enabled bool
	Key     string
	Secret  string
}

// HandshakeStatus tags the outcome of one authenticator invocation.
type HandshakeStatus int

const (
	// StatusNotConnected means the handshake did not produce a
	// profile on this request: either the authenticator just
	// redirected the browser to the provider, or the user declined
	// consent. Not an error; the flow takes no action.
	StatusNotConnected HandshakeStatus = iota

	// StatusConnected means the provider returned a profile.
	StatusConnected
)

// HandshakeResult is the tagged outcome of Authenticate. Profile is
// only meaningful when Status == StatusConnected.
type HandshakeResult struct {
	Status  HandshakeStatus
	Profile identity.RawProfile
}

// Authenticator performs the external authorization handshake with an
// identity provider. It owns the initiate-vs-callback state machine:
// the same method is invoked on the initial login request (where it
// redirects the browser and reports NotConnected) and on the provider
// callback (where it exchanges the authorization grant for a profile).
//
// Errors are returned unchanged to the caller; implementations must
// not retry. Disabled or unconfigured providers fail here, not in the
// orchestration layer.
type Authenticator interface {
	Name() string

	Authenticate(
		w http.ResponseWriter,
		r *http.Request,
		cfg Config,
		callbackURL string,
	) (HandshakeResult, error)
}
