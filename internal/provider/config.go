package provider

import (
	"context"
	"fmt"

	"github.com/LuizSantos1/social-login/internal/config"
)

// Scoped configuration paths, parameterized by provider name.
const (
	pathEnabled   = "social_login/%s/enabled"
	pathAPIKey    = "social_login/%s/api_key"
	pathAPISecret = "social_login/%s/api_secret"
)

// ConfigResolver reads a provider's enablement flag and credential
// pair from store-scoped configuration. It never judges the result:
// a disabled or unconfigured provider resolves to zero values and the
// authenticator decides whether to proceed.
type ConfigResolver struct {
	store config.Store
}

func NewConfigResolver(store config.Store) *ConfigResolver {
	return &ConfigResolver{store: store}
}

func (r *ConfigResolver) Resolve(ctx context.Context, storeID int64, name string) (Config, error) {
	var cfg Config

	enabled, ok, err := r.store.Get(ctx, storeID, fmt.Sprintf(pathEnabled, name))
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s enabled flag: %w", name, err)
	}
	cfg.Enabled = ok && isTruthy(enabled)

	key, _, err := r.store.Get(ctx, storeID, fmt.Sprintf(pathAPIKey, name))
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s api key: %w", name, err)
	}
	cfg.Key = key

	secret, _, err := r.store.Get(ctx, storeID, fmt.Sprintf(pathAPISecret, name))
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s api secret: %w", name, err)
	}
	cfg.Secret = secret

	return cfg, nil
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}
