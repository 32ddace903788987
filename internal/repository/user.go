package repository

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

// UseCase depends on interfaces, not concrete implementations, so the
// storage backend can be swapped and tests can pass fakes.
type UserRepository interface {
	// Create fails with domain.ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
