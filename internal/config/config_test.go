package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, []string{"facebook", "google", "windowslive"}, cfg.Providers)
	require.Equal(t, int64(1), cfg.DefaultWebsiteID)
	require.Equal(t, "/", cfg.CookiePath)
}

func TestLoadProviderListOverride(t *testing.T) {
	t.Setenv("SOCIAL_LOGIN_PROVIDERS", "Google, Facebook ,linkedin")

	cfg := Load()
	require.Equal(t, []string{"google", "facebook", "linkedin"}, cfg.Providers)
}

func TestLoadScopeOverride(t *testing.T) {
	t.Setenv("DEFAULT_WEBSITE_ID", "42")
	t.Setenv("DEFAULT_STORE_ID", "not-a-number")

	cfg := Load()
	require.Equal(t, int64(42), cfg.DefaultWebsiteID)
	require.Equal(t, int64(1), cfg.DefaultStoreID)
}
