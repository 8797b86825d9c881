package roundqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// completionDelay keeps the job from firing while the closing millisecond of
// the round still counts as ACTIVE.
const completionDelay = time.Second

// Metrics is the subset of round metrics the queue reports.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService interface defines the contract for job scheduling operations
type QueueService interface {
	// ScheduleRoundCompletion schedules the completion announcement shortly after endTime.
	ScheduleRoundCompletion(ctx context.Context, roundID uuid.UUID, endTime time.Time) error
	// GetScheduledJobs returns information about scheduled jobs for a round (for debugging)
	GetScheduledJobs(ctx context.Context, roundID uuid.UUID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service handles job scheduling for the round module using River
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics Metrics
}

// NewService creates a new River-based queue service for round scheduling.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics Metrics, announcer Announcer) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRoundCompletedWorker(announcer, ctxLogger))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			QueueName:          {MaxWorkers: 25},
		},
		Workers: workers,
		Logger:  ctxLogger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Round queue service initialized")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Round queue service started")
	return nil
}

// Stop waits for running jobs and releases the pgx pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Round queue service stopped")
	return nil
}

// ScheduleRoundCompletion inserts a RoundCompletedJob for endTime plus a
// small margin. Inserting twice for the same round is a no-op.
func (s *Service) ScheduleRoundCompletion(ctx context.Context, roundID uuid.UUID, endTime time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_round_completion", "river")

	runAt := endTime.Add(completionDelay)
	jobResult, err := s.client.Insert(ctx, RoundCompletedJob{RoundID: roundID}, &river.InsertOpts{
		Queue:       QueueName,
		ScheduledAt: runAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to schedule round completion job",
			attr.RoundID(roundID),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, "schedule_round_completion", "river")
		return fmt.Errorf("failed to schedule round completion job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_round_completion", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_round_completion", "river", time.Since(start))

	s.logger.InfoContext(ctx, "Round completion job scheduled",
		attr.RoundID(roundID),
		attr.Time("run_at", runAt),
		attr.Int64("job_id", jobResult.Job.ID),
		attr.Bool("duplicate", jobResult.UniqueSkippedAsDuplicate),
	)
	return nil
}

// riverJobRow is the slice of river_job the debugging queries read.
type riverJobRow struct {
	ID          int64          `bun:"id"`
	Kind        string         `bun:"kind"`
	State       string         `bun:"state"`
	Args        map[string]any `bun:"args,type:jsonb"`
	ScheduledAt *time.Time     `bun:"scheduled_at"`
	CreatedAt   time.Time      `bun:"created_at"`
	Attempt     int16          `bun:"attempt"`
	MaxAttempts int16          `bun:"max_attempts"`
}

// GetScheduledJobs returns information about scheduled jobs for a round (for debugging)
func (s *Service) GetScheduledJobs(ctx context.Context, roundID uuid.UUID) ([]JobInfo, error) {
	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", RoundCompletedJob{}.Kind()).
		Where("args->>'round_id' = ?", roundID.String()).
		OrderExpr("scheduled_at ASC NULLS LAST, created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			RoundID:     roundID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return result, nil
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client for advanced operations
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
