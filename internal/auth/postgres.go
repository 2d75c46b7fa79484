package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharsanguruparan/notevault/internal/model"
)

// PostgresCredentials stores users in the users table.
type PostgresCredentials struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentials constructs the store.
func NewPostgresCredentials(pool *pgxpool.Pool) *PostgresCredentials {
	return &PostgresCredentials{pool: pool}
}

func (p *PostgresCredentials) Create(ctx context.Context, u *model.User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user %s: %w", u.Username, model.ErrUserExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *PostgresCredentials) Get(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	row := p.pool.QueryRow(ctx, `
		SELECT username, email, password_hash, created_at FROM users WHERE username=$1
	`, username)
	if err := row.Scan(&u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, model.ErrUnknownUser)
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
