package account

import (
	"context"
	"errors"
	"time"
)

// ErrConflict reports that a create raced another login for the same
// (website, email) pair and lost against the uniqueness constraint.
var ErrConflict = errors.New("account already exists for website and email")

// Account is the tenant-scoped local user record. At most one account
// exists per (WebsiteID, Email) pair; identity fields are written once
// at creation and never overwritten by later logins.
type Account struct {
	ID        string
	WebsiteID int64
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// Store persists accounts. FindByEmail reports absence with a nil
// account and nil error; Create returns ErrConflict when the
// uniqueness invariant rejects the row.
type Store interface {
	FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error)
	Create(ctx context.Context, a *Account) error
}
