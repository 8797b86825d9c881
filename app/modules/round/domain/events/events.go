package roundevents

import (
	"time"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
)

// Topics published by the round module.
const (
	RoundCreatedV1   = "round.created.v1"
	RoundCompletedV1 = "round.completed.v1"
)

// RoundCreatedPayloadV1 announces a newly scheduled round.
type RoundCreatedPayloadV1 struct {
	RoundID   uuid.UUID `json:"round_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// WinnerV1 is the winning user of a completed round.
type WinnerV1 struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
}

// RoundCompletedPayloadV1 carries the final results of a round.
type RoundCompletedPayloadV1 struct {
	RoundID    uuid.UUID               `json:"round_id"`
	EndTime    time.Time               `json:"end_time"`
	TotalTaps  int                     `json:"total_taps"`
	TotalScore int                     `json:"total_score"`
	Winner     *WinnerV1               `json:"winner,omitempty"`
	Standings  []rounddomain.UserTotal `json:"standings"`
}

// NewRoundCreatedPayloadV1 builds the creation event for round.
func NewRoundCreatedPayloadV1(round *rounddomain.Round) RoundCreatedPayloadV1 {
	return RoundCreatedPayloadV1{
		RoundID:   round.ID,
		StartTime: round.StartTime,
		EndTime:   round.EndTime,
		CreatedAt: round.CreatedAt,
	}
}

// NewRoundCompletedPayloadV1 builds the completion event from final stats.
func NewRoundCompletedPayloadV1(round *rounddomain.Round, stats rounddomain.Stats) RoundCompletedPayloadV1 {
	payload := RoundCompletedPayloadV1{
		RoundID:    round.ID,
		EndTime:    round.EndTime,
		TotalTaps:  stats.TotalTaps,
		TotalScore: stats.TotalScore,
		Standings:  stats.Ranking(),
	}
	if leader := stats.Leader(); leader != nil {
		payload.Winner = &WinnerV1{
			UserID:   leader.UserID,
			Username: leader.Username,
			Score:    leader.Score,
		}
	}
	return payload
}
