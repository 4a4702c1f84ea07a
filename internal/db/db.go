package db

import "database/sql"

// DB wraps the shared *sql.DB so packages depend on one handle type.
type DB struct {
	*sql.DB
}
