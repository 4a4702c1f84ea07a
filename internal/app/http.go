package app

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LuizSantos1/social-login/internal/account"
	"github.com/LuizSantos1/social-login/internal/config"
	"github.com/LuizSantos1/social-login/internal/flow"
	"github.com/LuizSantos1/social-login/internal/handler"
	"github.com/LuizSantos1/social-login/internal/middleware"
	"github.com/LuizSantos1/social-login/internal/provider"
	"github.com/LuizSantos1/social-login/internal/provider/oidc"
	"github.com/LuizSantos1/social-login/internal/redirect"
	"github.com/LuizSantos1/social-login/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	establisher := session.NewEstablisher(sessionStore, session.CookieOptions{
		Path:     cfg.CookiePath,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	accountStore := account.NewPostgresStore(infra.DB)
	reconciler := account.NewReconciler(accountStore)

	configStore := config.NewPostgresStore(infra.DB)
	configResolver := provider.NewConfigResolver(configStore)

	callbackBuilder, err := provider.NewCallbackBuilder(cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}

	registry, err := buildRegistry(cfg.Providers)
	if err != nil {
		return nil, nil, err
	}

	redirects := redirect.NewManager(cfg.CookieSigningKey, cfg.CookiePath, cfg.CookieDomain)

	loginFlow := flow.New(
		registry,
		configResolver,
		callbackBuilder,
		reconciler,
		establisher,
		redirects,
	)

	scope := flow.Scope{
		WebsiteID: cfg.DefaultWebsiteID,
		StoreID:   cfg.DefaultStoreID,
	}

	socialHandler := handler.NewHandler(loginFlow, sessionStore, scope)
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	socialHandler.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		accountID, _ := middleware.AccountIDFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"account_id": accountID,
		})
	})

	return router, func() error {
		return infra.DB.Close()
	}, nil
}

// buildRegistry maps the configured provider list onto authenticator
// implementations. Adding a provider here is a deployment change
// (SOCIAL_LOGIN_PROVIDERS), not a per-store one; per-store enablement
// lives in scoped configuration.
func buildRegistry(names []string) (*provider.Registry, error) {
	var authenticators []provider.Authenticator

	for _, name := range names {
		switch strings.ToLower(name) {
		case "facebook":
			authenticators = append(authenticators, oidc.NewFacebook())
		case "google":
			authenticators = append(authenticators, oidc.NewGoogle())
		case "windowslive":
			authenticators = append(authenticators, oidc.NewWindowsLive())
		default:
			return nil, errors.New("unsupported social provider: " + name)
		}
	}

	return provider.NewRegistry(authenticators...), nil
}
