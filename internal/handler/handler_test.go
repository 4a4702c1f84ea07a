package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/LuizSantos1/social-login/internal/account"
	"github.com/LuizSantos1/social-login/internal/flow"
	"github.com/LuizSantos1/social-login/internal/identity"
	"github.com/LuizSantos1/social-login/internal/provider"
	"github.com/LuizSantos1/social-login/internal/session"
)

type fakeAuthenticator struct {
	result provider.HandshakeResult
	err    error
}

func (f *fakeAuthenticator) Name() string { return "google" }

func (f *fakeAuthenticator) Authenticate(
	w http.ResponseWriter,
	r *http.Request,
	cfg provider.Config,
	callbackURL string,
) (provider.HandshakeResult, error) {
	return f.result, f.err
}

type fakeConfigResolver struct{}

func (fakeConfigResolver) Resolve(ctx context.Context, storeID int64, name string) (provider.Config, error) {
	return provider.Config{Enabled: true, Key: "k", Secret: "s"}, nil
}

type fakeCallbackBuilder struct{}

func (fakeCallbackBuilder) Callback(name string) string {
	return "https://shop.example.com/sociallogin/endpoint/index?provider=" + name
}

type fakeEstablisher struct{}

func (fakeEstablisher) Establish(ctx context.Context, w http.ResponseWriter, accountID string) error {
	return nil
}

type fakeRedirects struct {
	destination string
}

func (f *fakeRedirects) Stash(w http.ResponseWriter, destination string, secure bool) {
	if destination != "" {
		f.destination = destination
	}
}

func (f *fakeRedirects) Retrieve(r *http.Request) (string, bool) {
	return f.destination, f.destination != ""
}

type fakeSessionStore struct {
	deleted []string
}

func (f *fakeSessionStore) Create(ctx context.Context, s session.Session) error { return nil }

func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	return nil, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func newRouter(t *testing.T, auth *fakeAuthenticator, redirects *fakeRedirects, sessions *fakeSessionStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := flow.New(
		provider.NewRegistry(auth),
		fakeConfigResolver{},
		fakeCallbackBuilder{},
		account.NewReconciler(account.NewMemoryStore()),
		fakeEstablisher{},
		redirects,
	)

	router := gin.New()
	NewHandler(f, sessions, flow.Scope{WebsiteID: 1, StoreID: 1}).RegisterRoutes(router)
	return router
}

func TestEndpointRedirectsToStashedDestination(t *testing.T) {
	auth := &fakeAuthenticator{result: provider.HandshakeResult{
		Status:  provider.StatusConnected,
		Profile: identity.RawProfile{FirstName: "Ann", Email: "a@x.com"},
	}}
	redirects := &fakeRedirects{destination: "https://site/cart"}
	router := newRouter(t, auth, redirects, &fakeSessionStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sociallogin/endpoint/index?provider=google", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "https://site/cart", rec.Header().Get("Location"))
}

func TestEndpointFallsBackToRootWithoutDestination(t *testing.T) {
	auth := &fakeAuthenticator{result: provider.HandshakeResult{
		Status:  provider.StatusConnected,
		Profile: identity.RawProfile{Email: "a@x.com"},
	}}
	router := newRouter(t, auth, &fakeRedirects{}, &fakeSessionStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sociallogin/endpoint/index?provider=google", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestEndpointRejectsHandshakeFailure(t *testing.T) {
	auth := &fakeAuthenticator{err: errors.New("exchange failed")}
	router := newRouter(t, auth, &fakeRedirects{}, &fakeSessionStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sociallogin/endpoint/index?provider=google", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRequiresProvider(t *testing.T) {
	router := newRouter(t, &fakeAuthenticator{}, &fakeRedirects{}, &fakeSessionStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sociallogin/login/index", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginStashesReferer(t *testing.T) {
	auth := &fakeAuthenticator{result: provider.HandshakeResult{Status: provider.StatusNotConnected}}
	redirects := &fakeRedirects{}
	router := newRouter(t, auth, redirects, &fakeSessionStore{})

	req := httptest.NewRequest(http.MethodGet, "/sociallogin/login/index?provider=google", nil)
	req.Header.Set("Referer", "https://site/cart")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "https://site/cart", redirects.destination)
}

func TestLogoutDeletesSessionAndClearsCookie(t *testing.T) {
	sessions := &fakeSessionStore{}
	router := newRouter(t, &fakeAuthenticator{}, &fakeRedirects{}, sessions)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"sid-1"}, sessions.deleted)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)
}
