package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/metrics"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

// CreateTaskInput has no owner field on the wire side: UserID is always the
// authenticated caller, filled in by the transport layer.
type CreateTaskInput struct {
	UserID      string
	Name        string
	Description *string
	DueDate     *time.Time
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &domain.MissingFieldError{Field: "name"}
	}
	if utf8.RuneCountInString(name) > domain.MaxTaskNameLength {
		return nil, domain.ErrNameTooLong
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Name:        name,
		Description: input.Description,
	}
	if input.DueDate != nil {
		d := domain.TruncateDate(*input.DueDate)
		task.DueDate = &d
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	metrics.TasksCreatedTotal.Inc()
	return created, nil
}

func (u *TaskUsecase) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	if filter.DueDateFrom != nil && filter.DueDateTo != nil && filter.DueDateFrom.After(*filter.DueDateTo) {
		return nil, domain.ErrInvalidDateRange
	}

	tasks, err := u.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}
