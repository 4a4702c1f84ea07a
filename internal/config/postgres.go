package config

import (
	"context"
	"database/sql"

	"github.com/LuizSantos1/social-login/internal/db"
)

// PostgresStore reads scoped configuration from the store_config table.
// Every Get hits the database so credential and enablement changes are
// visible on the next login attempt.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, storeID int64, path string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value
		FROM store_config
		WHERE store_id = $1
		  AND path = $2
	`, storeID, path).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}
