package provider

import (
	"net/url"
	"strings"
)

// CallbackPath is the route the identity provider redirects back to
// after consent.
const CallbackPath = "/sociallogin/endpoint/index"

// CallbackBuilder constructs the absolute callback URL registered
// with each identity provider. Providers validate the exact URL
// against their registered value, so the output must be byte-stable
// for a given base URL and provider.
type CallbackBuilder struct {
	base *url.URL
}

// NewCallbackBuilder parses the deployment's base URL. The scheme is
// forced to https: providers are only ever given TLS callbacks.
func NewCallbackBuilder(baseURL string) (*CallbackBuilder, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	u.Scheme = "https"
	return &CallbackBuilder{base: u}, nil
}

// Callback returns the callback URL for the given provider, carrying
// the provider identifier as a query parameter.
func (b *CallbackBuilder) Callback(name string) string {
	u := *b.base
	u.Path = u.Path + CallbackPath
	u.RawQuery = url.Values{"provider": {name}}.Encode()
	return u.String()
}
