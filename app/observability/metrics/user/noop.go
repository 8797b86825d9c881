package usermetrics

import (
	"context"
	"time"
)

type noop struct{}

// NewNoop returns UserMetrics that records nothing.
func NewNoop() UserMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordUserCreated(context.Context, string)                              {}
func (noop) RecordLogin(context.Context, bool)                                      {}
