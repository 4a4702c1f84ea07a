package provider

import "fmt"

// Registry holds the configured authenticators and allows lookup by
// provider name. It performs no auth logic itself.
type Registry struct {
	authenticators map[string]Authenticator
}

// NewRegistry registers the given authenticators by name. Names must
// be unique.
func NewRegistry(list ...Authenticator) *Registry {
	m := make(map[string]Authenticator)
	for _, a := range list {
		m[a.Name()] = a
	}
	return &Registry{authenticators: m}
}

// Get returns the authenticator by name or an error if the provider
// is not part of the supported set.
func (r *Registry) Get(name string) (Authenticator, error) {
	a, ok := r.authenticators[name]
	if !ok {
		return nil, fmt.Errorf("unknown social provider: %s", name)
	}
	return a, nil
}
