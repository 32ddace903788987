package repository

import "context"

type Totals struct {
	Users  int64
	Tokens int64
	Tasks  int64
}

type StatsRepository interface {
	Totals(ctx context.Context) (Totals, error)
}
