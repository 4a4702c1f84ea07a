package account

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LuizSantos1/social-login/internal/identity"
)

func TestReconcileCreatesOnFirstLogin(t *testing.T) {
	store := NewMemoryStore()
	r := NewReconciler(store)

	id := identity.Canonical{FirstName: "Ann", LastName: "-", Email: "a@x.com"}

	acct, err := r.Reconcile(context.Background(), id, 1)
	require.NoError(t, err)
	require.NotEmpty(t, acct.ID)
	require.Equal(t, int64(1), acct.WebsiteID)
	require.Equal(t, "a@x.com", acct.Email)
	require.Equal(t, "Ann", acct.FirstName)
	require.Equal(t, "-", acct.LastName)
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	r := NewReconciler(store)

	first, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Ann", LastName: "Lee", Email: "a@x.com",
	}, 1)
	require.NoError(t, err)

	// Second login with a different profile must be a pure lookup:
	// same account, no field mutations.
	second, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Annabel", LastName: "-", Email: "a@x.com",
	}, 1)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Ann", second.FirstName)
	require.Equal(t, "Lee", second.LastName)
	require.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestReconcileScopesByWebsite(t *testing.T) {
	store := NewMemoryStore()
	r := NewReconciler(store)

	id := identity.Canonical{FirstName: "Ann", LastName: "-", Email: "a@x.com"}

	one, err := r.Reconcile(context.Background(), id, 1)
	require.NoError(t, err)

	two, err := r.Reconcile(context.Background(), id, 2)
	require.NoError(t, err)

	require.NotEqual(t, one.ID, two.ID)
}

func TestReconcileEmailLookupIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	r := NewReconciler(store)

	first, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Ann", LastName: "-", Email: "A@X.com",
	}, 1)
	require.NoError(t, err)

	second, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Ann", LastName: "-", Email: "a@x.com",
	}, 1)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
}

func TestReconcileConcurrentFirstLogins(t *testing.T) {
	store := NewMemoryStore()
	r := NewReconciler(store)

	id := identity.Canonical{FirstName: "Ann", LastName: "-", Email: "a@x.com"}

	const n = 16
	results := make([]*Account, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Reconcile(context.Background(), id, 1)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0].ID, results[i].ID)
	}
}

// conflictStore simulates another process winning the create race:
// the lookup misses but the unique constraint rejects the insert.
type conflictStore struct{}

func (conflictStore) FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error) {
	return nil, nil
}

func (conflictStore) Create(ctx context.Context, a *Account) error {
	return ErrConflict
}

func TestReconcilePropagatesConflict(t *testing.T) {
	r := NewReconciler(conflictStore{})

	_, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Ann", LastName: "-", Email: "a@x.com",
	}, 1)
	require.ErrorIs(t, err, ErrConflict)
}

// ctxSensitiveStore fails Create when the context it receives is
// already cancelled.
type ctxSensitiveStore struct{}

func (ctxSensitiveStore) FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error) {
	return nil, nil
}

func (ctxSensitiveStore) Create(ctx context.Context, a *Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.ID = "acct-1"
	return nil
}

func TestReconcileCreateOutlivesCallerCancellation(t *testing.T) {
	r := NewReconciler(ctxSensitiveStore{})

	// The create runs inside a shared flight: a caller that gives up
	// must not poison the result for everyone piggybacked on it.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acct, err := r.Reconcile(ctx, identity.Canonical{
		FirstName: "Ann", LastName: "-", Email: "a@x.com",
	}, 1)
	require.NoError(t, err)
	require.Equal(t, "acct-1", acct.ID)
}

type failingStore struct {
	err error
}

func (s failingStore) FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error) {
	return nil, s.err
}

func (s failingStore) Create(ctx context.Context, a *Account) error {
	return s.err
}

func TestReconcilePropagatesLookupError(t *testing.T) {
	storeErr := errors.New("connection refused")
	r := NewReconciler(failingStore{err: storeErr})

	_, err := r.Reconcile(context.Background(), identity.Canonical{
		FirstName: "Ann", LastName: "-", Email: "a@x.com",
	}, 1)
	require.ErrorIs(t, err, storeErr)
}
