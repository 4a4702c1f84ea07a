// Package flow orchestrates the social login sequence: provider
// handshake, profile normalization, account reconciliation, session
// establishment and the post-login redirect.
package flow

import (
	"context"
	"net/http"

	"github.com/LuizSantos1/social-login/internal/account"
	"github.com/LuizSantos1/social-login/internal/identity"
	"github.com/LuizSantos1/social-login/internal/logger"
	"github.com/LuizSantos1/social-login/internal/provider"
)

// Scope is the tenant partition a login executes in: configuration is
// read at store scope, account uniqueness holds at website scope.
type Scope struct {
	WebsiteID int64
	StoreID   int64
}

// Status tags the outcome of a login attempt that did not error.
type Status int

const (
	// StatusNotConnected: the handshake did not complete on this
	// request (redirect just issued, or user declined). No account
	// was touched and no session was established.
	StatusNotConnected Status = iota

	// StatusConnected: the account was resolved and is now the
	// session principal.
	StatusConnected
)

// Result is the explicit outcome of LoginWithReferer. Every branch
// produces a value; RedirectURL is empty unless Status is
// StatusConnected and a destination was stashed earlier.
type Result struct {
	Status      Status
	RedirectURL string
}

// ConfigResolver yields a provider's store-scoped configuration.
type ConfigResolver interface {
	Resolve(ctx context.Context, storeID int64, name string) (provider.Config, error)
}

// CallbackBuilder yields the provider callback URL.
type CallbackBuilder interface {
	Callback(name string) string
}

// Reconciler resolves a canonical identity to exactly one account.
type Reconciler interface {
	Reconcile(ctx context.Context, id identity.Canonical, websiteID int64) (*account.Account, error)
}

// Establisher binds an account to the browser session.
type Establisher interface {
	Establish(ctx context.Context, w http.ResponseWriter, accountID string) error
}

// RedirectManager stashes and retrieves the post-login destination.
type RedirectManager interface {
	Stash(w http.ResponseWriter, destination string, secure bool)
	Retrieve(r *http.Request) (string, bool)
}

type Flow struct {
	registry   *provider.Registry
	config     ConfigResolver
	callback   CallbackBuilder
	reconciler Reconciler
	sessions   Establisher
	redirects  RedirectManager
}

// New wires the flow. All collaborators are injected; there is no
// ambient fallback.
func New(
	registry *provider.Registry,
	config ConfigResolver,
	callback CallbackBuilder,
	reconciler Reconciler,
	sessions Establisher,
	redirects RedirectManager,
) *Flow {
	return &Flow{
		registry:   registry,
		config:     config,
		callback:   callback,
		reconciler: reconciler,
		sessions:   sessions,
		redirects:  redirects,
	}
}

// run executes one handshake step and, when it connects, reconciles
// the profile and establishes the session. Handshake errors propagate
// unchanged and leave no account or session side effects.
func (f *Flow) run(w http.ResponseWriter, r *http.Request, providerName string, scope Scope) (Status, error) {
	ctx := r.Context()

	auth, err := f.registry.Get(providerName)
	if err != nil {
		return StatusNotConnected, err
	}

	cfg, err := f.config.Resolve(ctx, scope.StoreID, providerName)
	if err != nil {
		return StatusNotConnected, err
	}

	result, err := auth.Authenticate(w, r, cfg, f.callback.Callback(providerName))
	if err != nil {
		return StatusNotConnected, err
	}

	if result.Status != provider.StatusConnected {
		return StatusNotConnected, nil
	}

	id := identity.Normalize(result.Profile)

	acct, err := f.reconciler.Reconcile(ctx, id, scope.WebsiteID)
	if err != nil {
		return StatusNotConnected, err
	}

	if err := f.sessions.Establish(ctx, w, acct.ID); err != nil {
		return StatusNotConnected, err
	}

	logger.Info("social login connected", map[string]any{
		"provider":   providerName,
		"account_id": acct.ID,
		"website_id": scope.WebsiteID,
	})

	return StatusConnected, nil
}

// Login runs the flow without a deferred redirect. A NotConnected
// outcome is a silent no-op: the user can simply retry.
func (f *Flow) Login(w http.ResponseWriter, r *http.Request, providerName string, scope Scope) error {
	_, err := f.run(w, r, providerName, scope)
	return err
}

// LoginWithReferer additionally stashes referer before the handshake
// begins and, once connected, returns the destination stashed on the
// initiating request. The stash and the retrieve are independent: a
// cookie the client dropped simply yields an empty RedirectURL.
func (f *Flow) LoginWithReferer(
	w http.ResponseWriter,
	r *http.Request,
	providerName string,
	scope Scope,
	isSecure bool,
	referer string,
) (Result, error) {
	if referer != "" {
		f.redirects.Stash(w, referer, isSecure)
	}

	status, err := f.run(w, r, providerName, scope)
	if err != nil {
		return Result{Status: StatusNotConnected}, err
	}

	if status != StatusConnected {
		return Result{Status: StatusNotConnected}, nil
	}

	destination, _ := f.redirects.Retrieve(r)
	return Result{
		Status:      StatusConnected,
		RedirectURL: destination,
	}, nil
}
