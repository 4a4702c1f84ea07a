package account

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/LuizSantos1/social-login/internal/identity"
	"github.com/LuizSantos1/social-login/internal/logger"
)

// Reconciler maps a canonical identity to exactly one local account
// within a website scope: an existing account is returned unmodified,
// otherwise one is created from the identity fields.
//
// The lookup-then-create sequence is a check-then-act race under
// concurrent first logins with the same email. Creation is therefore
// serialized per (website, email) key in-process, and the store's
// uniqueness constraint backs it across processes; a lost race
// surfaces as ErrConflict.
type Reconciler struct {
	store Store
	group singleflight.Group
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile resolves identity to one account in websiteID's scope.
// A second login with the same email is a pure lookup: no field of an
// existing account is ever rewritten.
func (r *Reconciler) Reconcile(ctx context.Context, id identity.Canonical, websiteID int64) (*Account, error) {
	existing, err := r.store.FindByEmail(ctx, websiteID, id.Email)
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	key := fmt.Sprintf("%d:%s", websiteID, strings.ToLower(id.Email))

	v, err, _ := r.group.Do(key, func() (any, error) {
		// The flight's result is shared with piggybacked callers, so
		// it must not inherit the first request's cancellation.
		ctx := context.WithoutCancel(ctx)

		// Re-check under the flight: a concurrent login may have
		// created the account between the miss and this call.
		existing, err := r.store.FindByEmail(ctx, websiteID, id.Email)
		if err != nil {
			return nil, fmt.Errorf("account lookup failed: %w", err)
		}
		if existing != nil {
			return existing, nil
		}

		a := &Account{
			WebsiteID: websiteID,
			Email:     id.Email,
			FirstName: id.FirstName,
			LastName:  id.LastName,
		}
		if err := r.store.Create(ctx, a); err != nil {
			return nil, err
		}

		logger.Info("account created", map[string]any{
			"account_id": a.ID,
			"website_id": websiteID,
		})

		return a, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Account), nil
}
