package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/riverqueue/river"
)

// Refresher is the part of the tournament service the worker drives.
type Refresher interface {
	RefreshAll(ctx context.Context) (*tournamentservice.RefreshReport, error)
}

// RefreshAllWorker runs RefreshAllJob.
type RefreshAllWorker struct {
	river.WorkerDefaults[RefreshAllJob]
	logger    *slog.Logger
	refresher Refresher
}

// NewRefreshAllWorker returns the River worker for RefreshAllJob.
func NewRefreshAllWorker(logger *slog.Logger, refresher Refresher) *RefreshAllWorker {
	return &RefreshAllWorker{logger: logger, refresher: refresher}
}

// Timeout bounds one run; a full refresh pages through every tournament.
func (w *RefreshAllWorker) Timeout(*river.Job[RefreshAllJob]) time.Duration {
	return 10 * time.Minute
}

// Work refreshes all tournaments. Per-tournament failures are logged and do
// not fail the job; an infrastructure error does, so River retries it.
func (w *RefreshAllWorker) Work(ctx context.Context, job *river.Job[RefreshAllJob]) error {
	logger := w.logger.With(
		attr.Int64("job_id", job.ID),
		attr.String("trigger", job.Args.Trigger),
		attr.Int("attempt", job.Attempt),
	)

	start := time.Now()
	report, err := w.refresher.RefreshAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Refresh job failed", attr.Error(err))
		return fmt.Errorf("refresh all tournaments: %w", err)
	}

	for alias, reason := range report.Failed {
		logger.WarnContext(ctx, "Tournament refresh failed", attr.Alias(alias), attr.String("reason", reason))
	}
	logger.InfoContext(ctx, "Refresh job completed",
		attr.Int("refreshed", len(report.Refreshed)),
		attr.Int("failed", len(report.Failed)),
		attr.Duration("took", time.Since(start)),
	)
	return nil
}
