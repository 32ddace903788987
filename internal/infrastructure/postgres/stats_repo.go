package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/task-tracker/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) Totals(ctx context.Context) (repository.Totals, error) {
	var t repository.Totals
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM users),
		       (SELECT count(*) FROM tokens),
		       (SELECT count(*) FROM tasks)`,
	).Scan(&t.Users, &t.Tokens, &t.Tasks)
	if err != nil {
		return repository.Totals{}, fmt.Errorf("count totals: %w", err)
	}
	return t, nil
}
