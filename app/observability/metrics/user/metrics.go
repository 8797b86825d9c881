// Package usermetrics records account and session activity.
package usermetrics

import (
	"context"
	"time"
)

// UserMetrics is the metrics surface of the user and auth services.
type UserMetrics interface {
	RecordOperationAttempt(ctx context.Context, operationName, serviceName string)
	RecordOperationSuccess(ctx context.Context, operationName, serviceName string)
	RecordOperationFailure(ctx context.Context, operationName, serviceName string)
	RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration)

	RecordUserCreated(ctx context.Context, role string)
	RecordLogin(ctx context.Context, success bool)
}
