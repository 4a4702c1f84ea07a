package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default provider set. Additional providers are enabled by listing
// them in SOCIAL_LOGIN_PROVIDERS, not by a code change.
const defaultProviders = "facebook,google,windowslive"

type Config struct {
	AppPort string

	// BaseURL is the externally visible origin used to build the
	// provider callback URL, e.g. "https://shop.example.com".
	BaseURL string

	// Providers is the set of social providers this deployment accepts.
	Providers []string

	// DefaultWebsiteID / DefaultStoreID identify the tenant partition
	// used when a request does not carry an explicit scope.
	DefaultWebsiteID int64
	DefaultStoreID   int64

	// CookieSigningKey signs the post-login redirect cookie.
	CookieSigningKey string
	CookieDomain     string
	CookiePath       string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),

		BaseURL:   os.Getenv("BASE_URL"),
		Providers: splitList(getenv("SOCIAL_LOGIN_PROVIDERS", defaultProviders)),

		DefaultWebsiteID: getenvInt64("DEFAULT_WEBSITE_ID", 1),
		DefaultStoreID:   getenvInt64("DEFAULT_STORE_ID", 1),

		CookieSigningKey: os.Getenv("COOKIE_SIGNING_KEY"),
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),
		CookiePath:       getenv("COOKIE_PATH", "/"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
