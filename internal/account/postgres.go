package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/LuizSantos1/social-login/internal/db"
)

// Postgres unique_violation error code.
const uniqueViolation = "23505"

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, websiteID int64, email string) (*Account, error) {
	var a Account
	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, `
		SELECT id, website_id, email, first_name, last_name, created_at
		FROM accounts
		WHERE website_id = $1
		  AND LOWER(email) = LOWER($2)
	`, websiteID, email).Scan(
		&id,
		&a.WebsiteID,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&a.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.ID = id.String()
	return &a, nil
}

func (s *PostgresStore) Create(ctx context.Context, a *Account) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (website_id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`,
		a.WebsiteID,
		a.Email,
		a.FirstName,
		a.LastName,
	).Scan(&a.ID, &a.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}

	return err
}
