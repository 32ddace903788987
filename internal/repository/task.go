package repository

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// List returns the user's tasks matching filter in insertion order.
	List(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error)
	// GetByID fails with domain.ErrTaskNotFound when the task is missing or
	// belongs to another user.
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
}
