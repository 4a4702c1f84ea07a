package oidc

import (
	"net/http"
	"time"

	"github.com/LuizSantos1/social-login/internal/utils"
)

const (
	stateCookieName = "__social_state"
	stateTTL        = 5 * time.Minute
)

// issueState writes the CSRF state cookie and returns the state value
// to embed in the authorization URL.
func issueState(w http.ResponseWriter, secure bool) string {
	state := utils.RandomString(32)

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return state
}

// validateState checks the callback's state parameter against the
// cookie issued when the flow started.
func validateState(r *http.Request) bool {
	stateQuery := r.URL.Query().Get("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	return cookie.Value == stateQuery
}
