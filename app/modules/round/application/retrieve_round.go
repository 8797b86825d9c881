package roundservice

import (
	"context"
	"errors"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/google/uuid"
)

// ListRounds returns every round, newest first.
func (s *RoundService) ListRounds(ctx context.Context) ([]*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "ListRounds", "", func(ctx context.Context) (results.OperationResult[[]*rounddomain.Round, error], error) {
		rows, err := s.repo.ListRounds(ctx, nil)
		if err != nil {
			return results.OperationResult[[]*rounddomain.Round, error]{}, err
		}
		rounds := make([]*rounddomain.Round, 0, len(rows))
		for _, row := range rows {
			rounds = append(rounds, row.ToDomain())
		}
		return results.SuccessResult[[]*rounddomain.Round, error](rounds), nil
	}))
}

// GetRound returns a round with its phase, time left and aggregates.
func (s *RoundService) GetRound(ctx context.Context, roundID, viewerID uuid.UUID) (*RoundWithStats, error) {
	return unwrap(withTelemetry(s, ctx, "GetRound", roundID.String(), func(ctx context.Context) (results.OperationResult[*RoundWithStats, error], error) {
		loaded, err := s.loadResults(ctx, roundID)
		if err != nil {
			return results.OperationResult[*RoundWithStats, error]{}, err
		}
		if loaded.IsFailure() {
			return results.FailureResult[*RoundWithStats, error](*loaded.Failure), nil
		}
		res := *loaded.Success

		view := &RoundWithStats{
			Round:      res.Round,
			Status:     res.Phase,
			TimeLeft:   rounddomain.TimeRemaining(res.Round.StartTime, res.Round.EndTime, res.AsOf, res.Phase).Milliseconds(),
			TotalTaps:  res.Stats.TotalTaps,
			TotalScore: res.Stats.TotalScore,
			Standings:  res.Ranking,
		}
		if viewerID != uuid.Nil {
			view.MyScore = res.Stats.ScoreFor(viewerID)
		}
		if res.Winner != nil {
			view.Winner = &Winner{Username: res.Winner.Username, Score: res.Winner.Score}
		}
		return results.SuccessResult[*RoundWithStats, error](view), nil
	}))
}

// GetResults aggregates a round as of now.
func (s *RoundService) GetResults(ctx context.Context, roundID uuid.UUID) (*RoundResults, error) {
	return unwrap(withTelemetry(s, ctx, "GetResults", roundID.String(), func(ctx context.Context) (results.OperationResult[*RoundResults, error], error) {
		return s.loadResults(ctx, roundID)
	}))
}

// loadResults reads the round and its taps outside of a transaction and
// derives everything else from a single clock reading.
func (s *RoundService) loadResults(ctx context.Context, roundID uuid.UUID) (results.OperationResult[*RoundResults, error], error) {
	row, err := s.repo.GetRoundByID(ctx, nil, roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*RoundResults, error](ErrRoundNotFound), nil
		}
		return results.OperationResult[*RoundResults, error]{}, err
	}

	taps, err := s.repo.GetTapsForRound(ctx, nil, roundID)
	if err != nil {
		return results.OperationResult[*RoundResults, error]{}, err
	}

	round := row.ToDomain()
	now := s.clock.Now()
	phase := round.Phase(now)
	stats := rounddomain.Aggregate(taps)

	return results.SuccessResult[*RoundResults, error](&RoundResults{
		Round:   *round,
		Phase:   phase,
		AsOf:    now,
		Stats:   stats,
		Winner:  stats.Winner(phase),
		Ranking: stats.Ranking(),
	}), nil
}
