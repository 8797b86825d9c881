package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	usermetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/user"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UserService implements the Service interface.
type UserService struct {
	repo              userdb.Repository
	logger            *slog.Logger
	metrics           usermetrics.UserMetrics
	tracer            trace.Tracer
	db                *bun.DB
	zeroScoreUsername string
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	logger *slog.Logger,
	metrics usermetrics.UserMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	zeroScoreUsername string,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:              repo,
		logger:            logger,
		metrics:           metrics,
		tracer:            tracer,
		db:                db,
		zeroScoreUsername: zeroScoreUsername,
	}
}

// CreateUser stores a new account.
func (s *UserService) CreateUser(ctx context.Context, username, passwordHash string) (*userdomain.User, error) {
	result, err := withTelemetry(s, ctx, "CreateUser", username, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
			return s.createUserLogic(ctx, db, username, passwordHash)
		})
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *UserService) createUserLogic(ctx context.Context, db bun.IDB, username, passwordHash string) (results.OperationResult[*userdomain.User, error], error) {
	name, err := userdomain.NormalizeUsername(username)
	if err != nil {
		return results.FailureResult[*userdomain.User, error](err), nil
	}
	if passwordHash == "" {
		return results.OperationResult[*userdomain.User, error]{}, errors.New("password hash must not be empty")
	}

	user := &userdb.User{
		ID:           uuid.New(),
		Username:     name,
		PasswordHash: passwordHash,
		Role:         userdomain.RoleForUsername(name, s.zeroScoreUsername),
	}
	if err := s.repo.Create(ctx, db, user); err != nil {
		if errors.Is(err, userdb.ErrUsernameTaken) {
			return results.FailureResult[*userdomain.User, error](ErrUsernameTaken), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to create user: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordUserCreated(ctx, user.Role.String())
	}
	s.logger.InfoContext(ctx, "User created",
		attr.UserID(user.ID),
		attr.String("username", user.Username),
		attr.String("role", user.Role.String()),
	)

	return results.SuccessResult[*userdomain.User, error](user.ToDomain()), nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	result, err := withTelemetry(s, ctx, "GetUser", id.String(), func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		user, err := s.repo.GetByID(ctx, nil, id)
		return userResult(user, err)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// GetUserByUsername retrieves a user by exact username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	result, err := withTelemetry(s, ctx, "GetUserByUsername", username, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		user, err := s.repo.GetByUsername(ctx, nil, username)
		return userResult(user, err)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func userResult(user *userdb.User, err error) (results.OperationResult[*userdomain.User, error], error) {
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*userdomain.User, error](ErrUserNotFound), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to get user: %w", err)
	}
	return results.SuccessResult[*userdomain.User, error](user.ToDomain()), nil
}

// CountUsers reports how many accounts exist.
func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	result, err := withTelemetry(s, ctx, "CountUsers", "", func(ctx context.Context) (results.OperationResult[int, error], error) {
		n, err := s.repo.Count(ctx, nil)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](n), nil
	})
	if err != nil {
		return 0, err
	}
	return *result.Success, nil
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *UserService,
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
		s.metrics.RecordOperationAttempt(ctx, operationName, "UserService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "UserService", time.Since(startTime))
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
				s.metrics.RecordOperationFailure(ctx, operationName, "UserService")
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
			s.metrics.RecordOperationFailure(ctx, operationName, "UserService")
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
		s.metrics.RecordOperationSuccess(ctx, operationName, "UserService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *UserService,
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

var _ Service = (*UserService)(nil)
