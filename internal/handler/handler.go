package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LuizSantos1/social-login/internal/account"
	"github.com/LuizSantos1/social-login/internal/flow"
	"github.com/LuizSantos1/social-login/internal/logger"
	"github.com/LuizSantos1/social-login/internal/session"
)

type Handler struct {
	flow         *flow.Flow
	sessionStore session.Store
	scope        flow.Scope
}

func NewHandler(f *flow.Flow, sessionStore session.Store, scope flow.Scope) *Handler {
	return &Handler{
		flow:         f,
		sessionStore: sessionStore,
		scope:        scope,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/sociallogin/login/index", h.login)
	r.GET("/sociallogin/endpoint/index", h.endpoint)
	r.POST("/auth/logout", h.logout)
}

// login starts the handshake. The caller's referer survives the
// provider round trip via the redirect cookie.
func (h *Handler) login(c *gin.Context) {
	providerName := c.Query("provider")
	if providerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing provider"})
		return
	}

	referer := c.Query("referer")
	if referer == "" {
		referer = c.Request.Referer()
	}

	h.handle(c, providerName, referer)
}

// endpoint receives the provider callback and completes the flow.
func (h *Handler) endpoint(c *gin.Context) {
	providerName := c.Query("provider")
	if providerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing provider"})
		return
	}

	h.handle(c, providerName, "")
}

func (h *Handler) handle(c *gin.Context, providerName, referer string) {
	isSecure := c.Request.TLS != nil

	result, err := h.flow.LoginWithReferer(
		c.Writer,
		c.Request,
		providerName,
		h.scope,
		isSecure,
		referer,
	)
	if err != nil {
		if errors.Is(err, account.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "account conflict"})
			return
		}
		logger.Error("social login failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	// The authenticator may already have redirected the browser to
	// the provider's consent page.
	if c.Writer.Written() {
		return
	}

	if result.Status != flow.StatusConnected {
		c.Redirect(http.StatusFound, "/")
		return
	}

	destination := result.RedirectURL
	if destination == "" {
		destination = "/"
	}
	c.Redirect(http.StatusFound, destination)
}

func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort: an expired store entry is equivalent
		_ = h.sessionStore.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
