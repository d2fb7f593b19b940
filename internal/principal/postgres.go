package principal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Mussab2003/secrets-app/internal/db"
)

// pq error code for unique_violation.
const uniqueViolation = "23505"

// PostgresStore implements Store on top of the principals table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	p := &Principal{}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, secret, created_at, updated_at
		FROM principals
		WHERE email = $1
	`, email).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Secret, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return p, nil
}

func (s *PostgresStore) Insert(ctx context.Context, email, passwordHash string) (*Principal, error) {
	p := &Principal{
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO principals (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, email, passwordHash).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return p, nil
}

func (s *PostgresStore) UpdateSecret(ctx context.Context, email, secret string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE principals
		SET secret = $1, updated_at = NOW()
		WHERE email = $2
	`, secret, email)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
