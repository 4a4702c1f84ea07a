package config

import "context"

// Store is the scoped configuration storage consulted on every social
// login flow. Values are keyed by a slash-separated path and a store
// (tenant) scope. Implementations must not cache across requests:
// provider enablement and credentials take effect immediately.
type Store interface {
	// Get returns the raw value for path at the given store scope.
	// A missing key is reported via ok=false, not an error; err is
	// reserved for storage I/O failures.
	Get(ctx context.Context, storeID int64, path string) (value string, ok bool, err error)
}
