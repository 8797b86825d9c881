package roundsubscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	roundevents "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain/events"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Subscriber is the consuming side of the event bus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// CompletionHandler receives each decoded round.completed.v1 payload.
type CompletionHandler func(ctx context.Context, payload roundevents.RoundCompletedPayloadV1) error

// LogCompletion writes the final results of a round to the log.
func LogCompletion(logger *slog.Logger) CompletionHandler {
	return func(ctx context.Context, payload roundevents.RoundCompletedPayloadV1) error {
		attrs := []any{
			attr.RoundID(payload.RoundID),
			attr.Int("total_taps", payload.TotalTaps),
			attr.Int("total_score", payload.TotalScore),
		}
		if payload.Winner != nil {
			attrs = append(attrs,
				attr.String("winner", payload.Winner.Username),
				attr.Int("winner_score", payload.Winner.Score),
			)
		}
		logger.InfoContext(ctx, "Round results announced", attrs...)
		return nil
	}
}

// SubscribeToCompletions consumes round.completed.v1 until ctx is cancelled.
// Malformed messages are acked and dropped; handler failures are nacked for
// redelivery.
func SubscribeToCompletions(ctx context.Context, sub Subscriber, logger *slog.Logger, handle CompletionHandler) error {
	messages, err := sub.Subscribe(ctx, roundevents.RoundCompletedV1)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", roundevents.RoundCompletedV1, err)
	}

	go func() {
		for msg := range messages {
			processCompletion(ctx, msg, logger, handle)
		}
		logger.InfoContext(ctx, "Round completion subscription closed")
	}()
	return nil
}

func processCompletion(ctx context.Context, msg *message.Message, logger *slog.Logger, handle CompletionHandler) {
	var payload roundevents.RoundCompletedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		logger.ErrorContext(ctx, "Dropping malformed round completion",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		msg.Ack()
		return
	}

	if err := handle(ctx, payload); err != nil {
		logger.WarnContext(ctx, "Round completion handler failed",
			attr.RoundID(payload.RoundID),
			attr.Error(err),
		)
		msg.Nack()
		return
	}
	msg.Ack()
}
