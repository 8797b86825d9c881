package roundservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	roundmetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/round"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RoundService implements the Service interface.
type RoundService struct {
	repo      rounddb.Repository
	users     userdb.Repository
	clock     rounddomain.Clock
	config    Config
	publisher Publisher
	scheduler CompletionScheduler
	logger    *slog.Logger
	metrics   roundmetrics.RoundMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	users userdb.Repository,
	clock rounddomain.Clock,
	config Config,
	publisher Publisher,
	logger *slog.Logger,
	metrics roundmetrics.RoundMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = rounddomain.SystemClock{}
	}
	return &RoundService{
		repo:      repo,
		users:     users,
		clock:     clock,
		config:    config,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// SetCompletionScheduler wires the job queue. It must be called before the
// service handles requests; without it no completion is announced.
func (s *RoundService) SetCompletionScheduler(scheduler CompletionScheduler) {
	s.scheduler = scheduler
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *RoundService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "RoundService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "RoundService", time.Since(startTime))
		}
	}()

	s.logger.DebugContext(ctx, "Operation triggered", attr.ExtractTraceID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "RoundService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractTraceID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "RoundService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractTraceID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "RoundService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *RoundService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// unwrap turns an operation result into the usual (value, error) pair.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

var _ Service = (*RoundService)(nil)
