package roundservice

import (
	"context"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/google/uuid"
)

// CreateRound schedules a new round. The creation event and the completion
// job are best effort: the round exists once it is stored.
func (s *RoundService) CreateRound(ctx context.Context) (*rounddomain.Round, error) {
	round, err := unwrap(withTelemetry(s, ctx, "CreateRound", "", func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		now := s.clock.Now()
		start, end := rounddomain.Schedule(now, s.config.CooldownDuration, s.config.RoundDuration)
		if !start.Before(end) {
			return results.OperationResult[*rounddomain.Round, error]{}, fmt.Errorf("round duration must be positive, got %s", s.config.RoundDuration)
		}

		row := &rounddb.Round{
			ID:        uuid.New(),
			StartTime: start,
			EndTime:   end,
			CreatedAt: now,
		}
		if err := s.repo.CreateRound(ctx, nil, row); err != nil {
			return results.OperationResult[*rounddomain.Round, error]{}, err
		}

		return results.SuccessResult[*rounddomain.Round, error](row.ToDomain()), nil
	}))
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRoundCreated(ctx)
	}
	s.logger.InfoContext(ctx, "Round created",
		attr.RoundID(round.ID),
		attr.Time("start_time", round.StartTime),
		attr.Time("end_time", round.EndTime),
	)

	s.publishRoundCreated(ctx, round)
	s.scheduleCompletion(ctx, round)

	return round, nil
}

func (s *RoundService) publishRoundCreated(ctx context.Context, round *rounddomain.Round) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, roundevents.RoundCreatedV1, roundevents.NewRoundCreatedPayloadV1(round)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish round created event",
			attr.RoundID(round.ID),
			attr.Error(err),
		)
	}
}

func (s *RoundService) scheduleCompletion(ctx context.Context, round *rounddomain.Round) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.ScheduleRoundCompletion(ctx, round.ID, round.EndTime); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule round completion",
			attr.RoundID(round.ID),
			attr.Error(err),
		)
	}
}
