package roundservice

import (
	"context"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain/events"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/google/uuid"
)

// AnnounceCompletion publishes round.completed.v1 for a finished round. It
// never changes the round; running it twice publishes the same results twice.
func (s *RoundService) AnnounceCompletion(ctx context.Context, roundID uuid.UUID) (bool, error) {
	return unwrap(withTelemetry(s, ctx, "AnnounceCompletion", roundID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		loaded, err := s.loadResults(ctx, roundID)
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		if loaded.IsFailure() {
			return results.FailureResult[bool, error](*loaded.Failure), nil
		}
		res := *loaded.Success

		if res.Phase != rounddomain.PhaseCompleted {
			s.logger.InfoContext(ctx, "Round not completed yet",
				attr.RoundID(roundID),
				attr.String("phase", res.Phase.String()),
			)
			return results.SuccessResult[bool, error](false), nil
		}

		payload := roundevents.NewRoundCompletedPayloadV1(&res.Round, res.Stats)
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, roundevents.RoundCompletedV1, payload); err != nil {
				return results.OperationResult[bool, error]{}, fmt.Errorf("failed to publish round completed event: %w", err)
			}
		}

		if s.metrics != nil {
			s.metrics.RecordRoundCompleted(ctx, res.Stats.TotalTaps)
		}

		logAttrs := []any{
			attr.RoundID(roundID),
			attr.Int("total_taps", res.Stats.TotalTaps),
			attr.Int("total_score", res.Stats.TotalScore),
		}
		if payload.Winner != nil {
			logAttrs = append(logAttrs, attr.String("winner", payload.Winner.Username), attr.Int("winner_score", payload.Winner.Score))
		}
		s.logger.InfoContext(ctx, "Round completed", logAttrs...)

		return results.SuccessResult[bool, error](true), nil
	}))
}
