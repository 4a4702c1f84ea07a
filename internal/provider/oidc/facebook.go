package oidc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/LuizSantos1/social-login/internal/identity"
	"github.com/LuizSantos1/social-login/internal/logger"
	"github.com/LuizSantos1/social-login/internal/provider"
)

const facebookProfileURL = "https://graph.facebook.com/me?fields=first_name,last_name,email"

// FacebookAuthenticator drives the handshake for Facebook, which does
// not expose an OIDC discovery document. The profile comes from the
// Graph API instead of an ID token.
type FacebookAuthenticator struct{}

func NewFacebook() *FacebookAuthenticator {
	return &FacebookAuthenticator{}
}

func (a *FacebookAuthenticator) Name() string {
	return "facebook"
}

func (a *FacebookAuthenticator) oauthConfig(cfg provider.Config, callbackURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Key,
		ClientSecret: cfg.Secret,
		RedirectURL:  callbackURL,
		Endpoint:     facebook.Endpoint,
		Scopes:       []string{"email", "public_profile"},
	}
}

func (a *FacebookAuthenticator) Authenticate(
	w http.ResponseWriter,
	r *http.Request,
	cfg provider.Config,
	callbackURL string,
) (provider.HandshakeResult, error) {

	notConnected := provider.HandshakeResult{Status: provider.StatusNotConnected}

	if !cfg.Enabled {
		return notConnected, fmt.Errorf("facebook: %w", ErrProviderDisabled)
	}
	if cfg.Key == "" || cfg.Secret == "" {
		return notConnected, fmt.Errorf("facebook: %w", ErrProviderNotConfigured)
	}

	oauthCfg := a.oauthConfig(cfg, callbackURL)
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		logger.Warn("provider callback returned error", map[string]any{
			"provider": "facebook",
			"error":    errParam,
			"desc":     query.Get("error_description"),
		})
		return notConnected, nil
	}

	code := query.Get("code")
	if code == "" {
		state := issueState(w, r.TLS != nil)
		http.Redirect(w, r, oauthCfg.AuthCodeURL(state), http.StatusFound)
		return notConnected, nil
	}

	if !validateState(r) {
		return notConnected, fmt.Errorf("facebook: %w", ErrStateMismatch)
	}

	token, err := oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		return notConnected, fmt.Errorf("facebook token exchange failed: %w", err)
	}

	client := oauthCfg.Client(r.Context(), token)
	resp, err := client.Get(facebookProfileURL)
	if err != nil {
		return notConnected, fmt.Errorf("facebook profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return notConnected, fmt.Errorf("facebook profile fetch returned %d", resp.StatusCode)
	}

	var profile struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return notConnected, fmt.Errorf("facebook profile decode failed: %w", err)
	}

	logger.Info("provider handshake connected", map[string]any{
		"provider":      "facebook",
		"email_present": profile.Email != "",
	})

	return provider.HandshakeResult{
		Status: provider.StatusConnected,
		Profile: identity.RawProfile{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
		},
	}, nil
}
