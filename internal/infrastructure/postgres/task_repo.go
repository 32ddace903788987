package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id::text, user_id::text, name, description, due_date, completed_date, created_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, name, description, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	created, err := scanTask(r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Name,
		task.Description,
		task.DueDate,
	))
	if err != nil {
		if code, _, ok := pgConstraint(err); ok && code == codeForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *TaskRepository) List(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := []any{userID}
	where := []string{"user_id = $1"}

	if filter.Name != nil {
		args = append(args, *filter.Name)
		where = append(where, fmt.Sprintf("strpos(lower(name), lower($%d)) > 0", len(args)))
	}
	if filter.Description != nil {
		args = append(args, *filter.Description)
		where = append(where, fmt.Sprintf("strpos(lower(description), lower($%d)) > 0", len(args)))
	}
	if filter.DueDateFrom != nil {
		args = append(args, *filter.DueDateFrom)
		where = append(where, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.DueDateTo != nil {
		args = append(args, *filter.DueDateTo)
		where = append(where, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE %s
		ORDER BY seq ASC`,
		taskColumns, strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// GetByID matches on owner as well as id, so another user's task is
// indistinguishable from a missing one.
func (r *TaskRepository) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, domain.ErrTaskNotFound
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(r.pool.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if code, _, ok := pgConstraint(err); ok && code == codeInvalidTextRep {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.DueDate, &t.CompletedDate, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
