package roundservice

import (
	"context"
	"errors"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/Black-And-White-Club/guss-backend/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Rejection reasons reported to metrics.
const (
	rejectRoundNotFound = "round_not_found"
	rejectNotActive     = "not_active"
	rejectUserNotFound  = "user_not_found"
)

// HandleTap records a tap. The whole read-score-insert-sum sequence runs in
// one transaction holding the (user, round) lock, so concurrent taps of one
// user are numbered without gaps or duplicates.
func (s *RoundService) HandleTap(ctx context.Context, roundID, userID uuid.UUID) (*TapResult, error) {
	tap, err := unwrap(withTelemetry(s, ctx, "HandleTap", roundID.String(), func(ctx context.Context) (results.OperationResult[*TapResult, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*TapResult, error], error) {
			return s.handleTapLogic(ctx, db, roundID, userID)
		})
	}))
	if err != nil {
		return nil, err
	}

	// Zero-score taps are not recorded anywhere.
	if s.metrics != nil && tap.Score > 0 {
		s.metrics.RecordTapAccepted(ctx, tap.Score)
	}
	return tap, nil
}

func (s *RoundService) handleTapLogic(ctx context.Context, db bun.IDB, roundID, userID uuid.UUID) (results.OperationResult[*TapResult, error], error) {
	round, err := s.repo.GetRoundByID(ctx, db, roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return s.rejectTap(ctx, rejectRoundNotFound, ErrRoundNotFound), nil
		}
		return results.OperationResult[*TapResult, error]{}, err
	}

	if phase := rounddomain.ResolvePhase(round.StartTime, round.EndTime, s.clock.Now()); phase != rounddomain.PhaseActive {
		return s.rejectTap(ctx, rejectNotActive, ErrRoundNotActive), nil
	}

	user, err := s.users.GetByID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return s.rejectTap(ctx, rejectUserNotFound, ErrUserNotFound), nil
		}
		return results.OperationResult[*TapResult, error]{}, err
	}

	if !rounddomain.RecordsTaps(user.Role) {
		s.logger.DebugContext(ctx, "Ignoring tap of zero-score user",
			attr.RoundID(roundID),
			attr.UserID(userID),
		)
		return results.SuccessResult[*TapResult, error](&TapResult{}), nil
	}

	if err := s.repo.LockUserRound(ctx, db, userID, roundID); err != nil {
		return results.OperationResult[*TapResult, error]{}, err
	}

	// The round may have ended while waiting for the lock.
	if phase := rounddomain.ResolvePhase(round.StartTime, round.EndTime, s.clock.Now()); phase != rounddomain.PhaseActive {
		return s.rejectTap(ctx, rejectNotActive, ErrRoundNotActive), nil
	}

	prior, err := s.repo.CountTaps(ctx, db, userID, roundID)
	if err != nil {
		return results.OperationResult[*TapResult, error]{}, err
	}

	score := rounddomain.ScoreForTap(prior, user.Role)
	if err := s.repo.CreateTap(ctx, db, &rounddb.Tap{
		ID:      uuid.New(),
		UserID:  userID,
		RoundID: roundID,
		Score:   score,
	}); err != nil {
		return results.OperationResult[*TapResult, error]{}, err
	}

	total, err := s.repo.SumScore(ctx, db, userID, roundID)
	if err != nil {
		return results.OperationResult[*TapResult, error]{}, err
	}

	s.logger.DebugContext(ctx, "Tap recorded",
		attr.RoundID(roundID),
		attr.UserID(userID),
		attr.Int("tap_number", prior+1),
		attr.Int("score", score),
		attr.Int("total_score", total),
	)

	return results.SuccessResult[*TapResult, error](&TapResult{Score: score, TotalScore: total}), nil
}

func (s *RoundService) rejectTap(ctx context.Context, reason string, failure error) results.OperationResult[*TapResult, error] {
	if s.metrics != nil {
		s.metrics.RecordTapRejected(ctx, reason)
	}
	return results.FailureResult[*TapResult, error](failure)
}
