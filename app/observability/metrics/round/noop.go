package roundmetrics

import (
	"context"
	"time"
)

type noop struct{}

// NewNoop returns RoundMetrics that records nothing.
func NewNoop() RoundMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordRoundCreated(context.Context)                                     {}
func (noop) RecordTapAccepted(context.Context, int)                                 {}
func (noop) RecordTapRejected(context.Context, string)                              {}
func (noop) RecordRoundCompleted(context.Context, int)                              {}
