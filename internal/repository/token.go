package repository

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type TokenRepository interface {
	// Create fails with domain.ErrTokenExists if the user already holds a token.
	Create(ctx context.Context, token *domain.Token) (*domain.Token, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Token, error)
	FindByKey(ctx context.Context, key string) (*domain.Token, error)
}
