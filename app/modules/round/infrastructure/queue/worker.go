package roundqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// Announcer publishes the results of a finished round. roundservice.Service
// satisfies it.
type Announcer interface {
	AnnounceCompletion(ctx context.Context, roundID uuid.UUID) (bool, error)
}

// retryDelay is how long a job waits when it fires before the round is over,
// which happens when the worker clock runs behind the database clock.
const retryDelay = 2 * time.Second

// RoundCompletedWorker runs RoundCompletedJob.
type RoundCompletedWorker struct {
	river.WorkerDefaults[RoundCompletedJob]
	announcer Announcer
	logger    *slog.Logger
}

// NewRoundCompletedWorker creates the worker for RoundCompletedJob.
func NewRoundCompletedWorker(announcer Announcer, logger *slog.Logger) *RoundCompletedWorker {
	return &RoundCompletedWorker{announcer: announcer, logger: logger}
}

func (w *RoundCompletedWorker) Work(ctx context.Context, job *river.Job[RoundCompletedJob]) error {
	logger := w.logger.With(
		attr.RoundID(job.Args.RoundID),
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)

	announced, err := w.announcer.AnnounceCompletion(ctx, job.Args.RoundID)
	if errors.Is(err, roundservice.ErrRoundNotFound) {
		logger.WarnContext(ctx, "Round vanished, cancelling completion job")
		return river.JobCancel(err)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to announce round completion", attr.Error(err))
		return fmt.Errorf("failed to announce round %s: %w", job.Args.RoundID, err)
	}
	if !announced {
		logger.InfoContext(ctx, "Round still running, snoozing completion job")
		return river.JobSnooze(retryDelay)
	}

	logger.InfoContext(ctx, "Round completion announced")
	return nil
}

// Timeout bounds a single announcement attempt.
func (w *RoundCompletedWorker) Timeout(*river.Job[RoundCompletedJob]) time.Duration {
	return 30 * time.Second
}
