// Package roundmetrics records round and tap activity.
package roundmetrics

import (
	"context"
	"time"
)

// RoundMetrics is the metrics surface of the round service, queue and handlers.
type RoundMetrics interface {
	RecordOperationAttempt(ctx context.Context, operationName, serviceName string)
	RecordOperationSuccess(ctx context.Context, operationName, serviceName string)
	RecordOperationFailure(ctx context.Context, operationName, serviceName string)
	RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration)

	RecordRoundCreated(ctx context.Context)
	RecordTapAccepted(ctx context.Context, score int)
	RecordTapRejected(ctx context.Context, reason string)
	RecordRoundCompleted(ctx context.Context, totalTaps int)
}
