// Package attr holds the slog attribute helpers used across the services.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

// Error records err under the "error" key. A nil error is logged as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// UUID records id as its canonical string form.
func UUID(key string, id uuid.UUID) slog.Attr {
	return slog.String(key, id.String())
}

func UserID(id uuid.UUID) slog.Attr { return UUID("user_id", id) }

func RoundID(id uuid.UUID) slog.Attr { return UUID("round_id", id) }

// ExtractTraceID returns the trace id of the span in ctx, if any.
func ExtractTraceID(ctx context.Context) slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return slog.String("trace_id", "")
	}
	return slog.String("trace_id", sc.TraceID().String())
}
