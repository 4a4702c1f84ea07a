package identity

// FieldPlaceholder stands in for any profile field the provider did
// not return. Downstream consumers can rely on every canonical field
// being non-empty.
const FieldPlaceholder = "-"

// RawProfile is the provider-shaped profile handed back by an
// authenticator. Empty fields mean the provider did not supply them.
type RawProfile struct {
	FirstName string
	LastName  string
	Email     string
}

// Canonical is the normalized identity record used for account
// reconciliation.
type Canonical struct {
	FirstName string
	LastName  string
	Email     string
}

// Normalize maps a raw provider profile onto a canonical identity.
// Missing fields become FieldPlaceholder; present fields are copied
// verbatim. Normalize is pure and never fails, even on an empty
// profile.
func Normalize(p RawProfile) Canonical {
	return Canonical{
		FirstName: orPlaceholder(p.FirstName),
		LastName:  orPlaceholder(p.LastName),
		Email:     orPlaceholder(p.Email),
	}
}

func orPlaceholder(v string) string {
	if v == "" {
		return FieldPlaceholder
	}
	return v
}
