// Package oidc implements the provider.Authenticator contract for
// identity providers that speak OpenID Connect. One Authenticator
// instance serves one provider; credentials arrive per request from
// scoped configuration, never from process state.
package oidc

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/LuizSantos1/social-login/internal/identity"
	"github.com/LuizSantos1/social-login/internal/logger"
	"github.com/LuizSantos1/social-login/internal/provider"
)

// Issuer URLs for the OIDC-capable providers in the default set.
const (
	GoogleIssuer      = "https://accounts.google.com"
	WindowsLiveIssuer = "https://login.microsoftonline.com/consumers/v2.0"
)

var (
	ErrProviderDisabled      = errors.New("social provider disabled for store")
	ErrProviderNotConfigured = errors.New("social provider credentials missing")
	ErrStateMismatch         = errors.New("state parameter mismatch")
)

// Authenticator drives the authorization-code handshake for one OIDC
// provider. Discovery runs lazily on the first login attempt and only
// success is memoized: a failed attempt (issuer outage, network blip)
// is retried on the next login. Client credentials are taken from the
// per-request Config so admin changes apply immediately.
type Authenticator struct {
	name   string
	issuer string

	mu       sync.Mutex
	provider *gooidc.Provider
}

func New(name, issuer string) *Authenticator {
	return &Authenticator{name: name, issuer: issuer}
}

// NewGoogle returns the authenticator for the "google" provider.
func NewGoogle() *Authenticator {
	return New("google", GoogleIssuer)
}

// NewWindowsLive returns the authenticator for the "windowslive"
// provider (Microsoft consumer accounts).
func NewWindowsLive() *Authenticator {
	return New("windowslive", WindowsLiveIssuer)
}

func (a *Authenticator) Name() string {
	return a.name
}

func (a *Authenticator) discover(r *http.Request) (*gooidc.Provider, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.provider != nil {
		return a.provider, nil
	}

	p, err := gooidc.NewProvider(r.Context(), a.issuer)
	if err != nil {
		// provider stays nil so the next login retries discovery
		return nil, fmt.Errorf("%s oidc discovery failed: %w", a.name, err)
	}

	a.provider = p
	return p, nil
}

func (a *Authenticator) oauthConfig(p *gooidc.Provider, cfg provider.Config, callbackURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Key,
		ClientSecret: cfg.Secret,
		RedirectURL:  callbackURL,
		Endpoint:     p.Endpoint(),
		Scopes: []string{
			gooidc.ScopeOpenID,
			"profile",
			"email",
		},
	}
}

// Authenticate performs one step of the handshake state machine:
//
//   - no code parameter yet: issue the state cookie, redirect the
//     browser to the provider's consent page, report NotConnected;
//   - provider returned an error parameter: the user declined, report
//     NotConnected without an error;
//   - code present: validate state, exchange the code, verify the ID
//     token and report Connected with the extracted profile.
func (a *Authenticator) Authenticate(
	w http.ResponseWriter,
	r *http.Request,
	cfg provider.Config,
	callbackURL string,
) (provider.HandshakeResult, error) {

	notConnected := provider.HandshakeResult{Status: provider.StatusNotConnected}

	if !cfg.Enabled {
		return notConnected, fmt.Errorf("%s: %w", a.name, ErrProviderDisabled)
	}
	if cfg.Key == "" || cfg.Secret == "" {
		return notConnected, fmt.Errorf("%s: %w", a.name, ErrProviderNotConfigured)
	}

	p, err := a.discover(r)
	if err != nil {
		return notConnected, err
	}
	oauthCfg := a.oauthConfig(p, cfg, callbackURL)

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		logger.Warn("provider callback returned error", map[string]any{
			"provider": a.name,
			"error":    errParam,
			"desc":     query.Get("error_description"),
		})
		return notConnected, nil
	}

	code := query.Get("code")
	if code == "" {
		state := issueState(w, r.TLS != nil)
		http.Redirect(w, r, oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
		return notConnected, nil
	}

	if !validateState(r) {
		return notConnected, fmt.Errorf("%s: %w", a.name, ErrStateMismatch)
	}

	token, err := oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		return notConnected, fmt.Errorf("%s token exchange failed: %w", a.name, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return notConnected, fmt.Errorf("%s did not return id_token", a.name)
	}

	verifier := p.Verifier(&gooidc.Config{ClientID: cfg.Key})
	idToken, err := verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		return notConnected, fmt.Errorf("%s id_token verification failed: %w", a.name, err)
	}

	var claims struct {
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Email      string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return notConnected, fmt.Errorf("%s id_token claims parse failed: %w", a.name, err)
	}

	logger.Info("provider handshake connected", map[string]any{
		"provider":      a.name,
		"issuer":        idToken.Issuer,
		"email_present": claims.Email != "",
	})

	return provider.HandshakeResult{
		Status: provider.StatusConnected,
		Profile: identity.RawProfile{
			FirstName: claims.GivenName,
			LastName:  claims.FamilyName,
			Email:     claims.Email,
		},
	}, nil
}
