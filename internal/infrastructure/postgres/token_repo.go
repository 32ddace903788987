package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// Create inserts the token unless the user already holds one. A concurrent
// insert for the same user makes this return domain.ErrTokenExists; the
// caller then re-reads the surviving token in a fresh statement.
func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	query := `
		INSERT INTO tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING key, user_id::text, created_at`

	created, err := scanToken(r.pool.QueryRow(ctx, query, token.Key, token.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrTokenExists
		}
		if code, constraint, ok := pgConstraint(err); ok {
			switch {
			case code == codeForeignKeyViolation:
				return nil, domain.ErrUserNotFound
			case code == codeUniqueViolation && constraint == "tokens_pkey":
				return nil, domain.ErrTokenKeyConflict
			}
		}
		return nil, err
	}
	return created, nil
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID string) (*domain.Token, error) {
	query := `SELECT key, user_id::text, created_at FROM tokens WHERE user_id = $1`

	return scanToken(r.pool.QueryRow(ctx, query, userID))
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	query := `SELECT key, user_id::text, created_at FROM tokens WHERE key = $1`

	return scanToken(r.pool.QueryRow(ctx, query, key))
}

func scanToken(row rowScanner) (*domain.Token, error) {
	var t domain.Token
	err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("scan token: %w", err)
	}
	return &t, nil
}
