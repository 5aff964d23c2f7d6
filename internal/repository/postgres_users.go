package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `user_id::text, auth0_user_id, COALESCE(email, ''), COALESCE(name, ''), created_at`

func (r *PostgresUsersRepository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth0_user_id = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, subject).Scan(&u.UserID, &u.Subject, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", subject, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUsersRepository) UpsertBySubject(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.Subject == "" {
		return nil, fmt.Errorf("user subject is required")
	}
	query := `
		INSERT INTO users (user_id, auth0_user_id, email, name)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (auth0_user_id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, users.email),
			name  = COALESCE(EXCLUDED.name, users.name)
		RETURNING ` + userColumns

	var out domain.User
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), u.Subject, u.Email, u.Name).
		Scan(&out.UserID, &out.Subject, &out.Email, &out.Name, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}
