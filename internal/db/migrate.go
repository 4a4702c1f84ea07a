package db

import (
	"context"
	"database/sql"
)

const bootstrapMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS accounts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    website_id bigint NOT NULL,
    email text NOT NULL,
    first_name text NOT NULL,
    last_name text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

-- At most one account per (website, email). The create path relies on
-- this index to reject duplicates under concurrent logins.
CREATE UNIQUE INDEX IF NOT EXISTS accounts_website_email_unique
ON accounts (website_id, LOWER(email));

CREATE TABLE IF NOT EXISTS store_config (
    store_id bigint NOT NULL,
    path text NOT NULL,
    value text NOT NULL,
    PRIMARY KEY (store_id, path)
);
`

// RunBootstrapMigration creates the schema this service needs. It is
// idempotent and runs on every startup.
func RunBootstrapMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, bootstrapMigration)
	return err
}
