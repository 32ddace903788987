package reporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/metrics"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
	"github.com/robfig/cron/v3"
)

// Reporter periodically publishes store totals as Prometheus gauges.
type Reporter struct {
	repo   repository.StatsRepository
	logger *slog.Logger
	cron   *cron.Cron
}

// New validates spec (standard cron or @every/@hourly descriptors) and
// registers the refresh job. Nothing runs until Start.
func New(repo repository.StatsRepository, spec string, logger *slog.Logger) (*Reporter, error) {
	r := &Reporter{
		repo:   repo,
		logger: logger.With("component", "stats_reporter"),
		cron:   cron.New(),
	}
	if _, err := r.cron.AddFunc(spec, func() { r.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("parse stats cron %q: %w", spec, err)
	}
	return r, nil
}

// Start refreshes once immediately, then on schedule until ctx is done.
func (r *Reporter) Start(ctx context.Context) {
	r.Refresh(ctx)
	r.cron.Start()
	r.logger.Info("stats reporter started")

	<-ctx.Done()
	<-r.cron.Stop().Done()
	r.logger.Info("stats reporter shut down")
}

func (r *Reporter) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	totals, err := r.repo.Totals(ctx)
	if err != nil {
		metrics.StatsRefreshErrorsTotal.Inc()
		r.logger.Error("refresh totals", "error", err)
		return
	}

	metrics.StoredEntities.WithLabelValues("users").Set(float64(totals.Users))
	metrics.StoredEntities.WithLabelValues("tokens").Set(float64(totals.Tokens))
	metrics.StoredEntities.WithLabelValues("tasks").Set(float64(totals.Tasks))
	r.logger.Debug("totals refreshed", "users", totals.Users, "tokens", totals.Tokens, "tasks", totals.Tasks)
}
