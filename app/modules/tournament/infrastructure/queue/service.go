package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// QueueService schedules provider refreshes.
type QueueService interface {
	// TriggerRefresh enqueues a refresh now. Requests within the same minute
	// collapse into one job; the returned bool is false for a duplicate.
	TriggerRefresh(ctx context.Context) (int64, bool, error)
	// RecentRuns lists the latest refresh jobs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Config controls the periodic refresh.
type Config struct {
	Periodic bool
	Interval time.Duration
}

// Service runs refresh jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics metrics.Metrics
}

// NewService creates the River client with the refresh worker registered and,
// when cfg.Periodic is set, a periodic refresh every cfg.Interval.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, m metrics.Metrics, refresher Refresher, cfg Config) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_tournament_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", "river")

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRefreshAllWorker(ctxLogger, refresher))

	riverConfig := &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		Workers: workers,
	}
	if cfg.Periodic {
		if cfg.Interval <= 0 {
			pool.Close()
			m.RecordOperationFailure(ctx, "initialize_service", "river")
			return nil, fmt.Errorf("periodic refresh needs a positive interval")
		}
		riverConfig.PeriodicJobs = []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(cfg.Interval),
				func() (river.JobArgs, *river.InsertOpts) {
					return RefreshAllJob{Trigger: triggerPeriodic}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		}
	}

	riverClient, err := river.NewClient(riverpgxv5.New(pool), riverConfig)
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", "river")
	m.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Tournament queue service initialized",
		attr.Bool("periodic", cfg.Periodic),
		attr.Duration("interval", cfg.Interval))
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: m,
	}, nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))
	s.logger.Info("Tournament queue service started")
	return nil
}

// Stop waits for running jobs, then releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", time.Since(start))
	s.logger.Info("Tournament queue service stopped")
	return nil
}

// TriggerRefresh enqueues a manual refresh-all job. The bool is false when
// a job queued within the last minute was reused.
func (s *Service) TriggerRefresh(ctx context.Context) (int64, bool, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "trigger_refresh", "river")

	res, err := s.client.Insert(ctx, RefreshAllJob{Trigger: triggerManual}, &river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByPeriod: time.Minute},
	})
	if err != nil {
		s.logger.Error("Failed to enqueue refresh", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "trigger_refresh", "river")
		return 0, false, fmt.Errorf("failed to enqueue refresh: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "trigger_refresh", "river")
	s.metrics.RecordOperationDuration(ctx, "trigger_refresh", "river", time.Since(start))
	s.logger.Info("Refresh enqueued",
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate))
	return res.Job.ID, !res.UniqueSkippedAsDuplicate, nil
}

// RecentRuns lists the newest refresh-all jobs, most recent first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]JobInfo, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "recent_runs", "river")

	type riverJobRow struct {
		ID          int64          `bun:"id"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args,type:jsonb"`
		Attempt     int16          `bun:"attempt"`
		CreatedAt   time.Time      `bun:"created_at"`
		FinalizedAt *time.Time     `bun:"finalized_at"`
	}

	var rows []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "state", "args", "attempt", "created_at", "finalized_at").
		Where("kind = ?", RefreshAllJob{}.Kind()).
		Order("id DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "recent_runs", "river")
		return nil, fmt.Errorf("failed to query refresh jobs: %w", err)
	}

	out := make([]JobInfo, len(rows))
	for i, row := range rows {
		trigger, _ := row.Args["trigger"].(string)
		out[i] = JobInfo{
			ID:          row.ID,
			State:       row.State,
			Trigger:     trigger,
			Attempt:     int(row.Attempt),
			CreatedAt:   row.CreatedAt,
			FinalizedAt: row.FinalizedAt,
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "recent_runs", "river")
	s.metrics.RecordOperationDuration(ctx, "recent_runs", "river", time.Since(start))
	return out, nil
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}
