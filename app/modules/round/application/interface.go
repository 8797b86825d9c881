package roundservice

import (
	"context"
	"time"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
)

// Service defines the round lifecycle operations.
type Service interface {
	// CreateRound schedules a round starting after the configured cooldown.
	CreateRound(ctx context.Context) (*rounddomain.Round, error)

	// ListRounds returns all rounds, newest first.
	ListRounds(ctx context.Context) ([]*rounddomain.Round, error)

	// GetRound returns the round with its live statistics as seen by viewerID.
	// uuid.Nil is an anonymous viewer whose score is always 0.
	GetRound(ctx context.Context, roundID, viewerID uuid.UUID) (*RoundWithStats, error)

	// HandleTap records one tap of userID in an active round.
	HandleTap(ctx context.Context, roundID, userID uuid.UUID) (*TapResult, error)

	// GetResults aggregates all taps of a round in any phase.
	GetResults(ctx context.Context, roundID uuid.UUID) (*RoundResults, error)

	// AnnounceCompletion publishes the final results once the round is over.
	// It reports false without publishing while the round is still running.
	AnnounceCompletion(ctx context.Context, roundID uuid.UUID) (bool, error)
}

// Config holds the scheduling rules applied by CreateRound.
type Config struct {
	RoundDuration    time.Duration
	CooldownDuration time.Duration
}

// Publisher emits round events. eventbus.EventBus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// CompletionScheduler arranges for AnnounceCompletion to run after a round ends.
type CompletionScheduler interface {
	ScheduleRoundCompletion(ctx context.Context, roundID uuid.UUID, endTime time.Time) error
}

// Winner is the public view of a round winner.
type Winner struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// RoundWithStats is a round enriched with its derived phase and totals.
type RoundWithStats struct {
	rounddomain.Round
	Status     rounddomain.Phase `json:"status"`
	TimeLeft   int64             `json:"timeLeft"`
	TotalTaps  int               `json:"totalTaps"`
	TotalScore int               `json:"totalScore"`
	MyScore    int               `json:"myScore"`
	// Winner is only set once the round is completed.
	Winner    *Winner                 `json:"winner"`
	Standings []rounddomain.UserTotal `json:"standings"`
}

// TapResult is the outcome of a single tap.
type TapResult struct {
	Score      int `json:"tapScore"`
	TotalScore int `json:"totalScore"`
}

// RoundResults is the full aggregate of a round at a point in time.
type RoundResults struct {
	Round   rounddomain.Round
	Phase   rounddomain.Phase
	AsOf    time.Time
	Stats   rounddomain.Stats
	Winner  *rounddomain.UserTotal
	Ranking []rounddomain.UserTotal
}
