package memory

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[task.UserID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	created := cloneTask(task)
	created.ID = newID()
	created.CompletedDate = nil
	created.CreatedAt = r.s.now()
	r.s.tasks = append(r.s.tasks, created)
	return cloneTask(created), nil
}

func (r *TaskRepository) List(_ context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, t := range r.s.tasks {
		if t.UserID == userID && filter.Matches(t) {
			tasks = append(tasks, cloneTask(t))
		}
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(_ context.Context, taskID, userID string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tasks {
		if t.ID == taskID && t.UserID == userID {
			return cloneTask(t), nil
		}
	}
	return nil, domain.ErrTaskNotFound
}
