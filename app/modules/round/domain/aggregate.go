package rounddomain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TapRecord is a persisted tap joined with the tapping user's name.
type TapRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Score     int
	CreatedAt time.Time
}

// UserTotal is one user's aggregated result in a round.
type UserTotal struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Taps     int       `json:"taps"`
	Score    int       `json:"score"`
}

// Stats is the aggregate view of all taps in a round.
type Stats struct {
	TotalTaps  int
	TotalScore int
	// PerUser is ordered by each user's first tap.
	PerUser []UserTotal
}

// Aggregate folds taps into per-round and per-user totals. The input is not
// modified; taps are considered in (CreatedAt, ID) order.
func Aggregate(taps []TapRecord) Stats {
	ordered := make([]TapRecord, len(taps))
	copy(ordered, taps)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	stats := Stats{PerUser: []UserTotal{}}
	index := make(map[uuid.UUID]int)

	for _, tap := range ordered {
		stats.TotalTaps++
		stats.TotalScore += tap.Score

		i, ok := index[tap.UserID]
		if !ok {
			i = len(stats.PerUser)
			index[tap.UserID] = i
			stats.PerUser = append(stats.PerUser, UserTotal{
				UserID:   tap.UserID,
				Username: tap.Username,
			})
		}
		stats.PerUser[i].Taps++
		stats.PerUser[i].Score += tap.Score
	}

	return stats
}

// ScoreFor returns the total score of userID, 0 if the user never tapped.
func (s Stats) ScoreFor(userID uuid.UUID) int {
	for _, u := range s.PerUser {
		if u.UserID == userID {
			return u.Score
		}
	}
	return 0
}

// Leader returns the user with the strictly highest score. Ties go to the
// user who tapped first. Returns nil when nobody tapped.
func (s Stats) Leader() *UserTotal {
	if len(s.PerUser) == 0 {
		return nil
	}
	best := s.PerUser[0]
	for _, u := range s.PerUser[1:] {
		if u.Score > best.Score {
			best = u
		}
	}
	return &best
}

// Winner returns the leader once the round is completed and nil otherwise.
func (s Stats) Winner(phase Phase) *UserTotal {
	if phase != PhaseCompleted {
		return nil
	}
	return s.Leader()
}

// Ranking returns the per-user totals sorted by score, highest first, with
// first-tap order breaking ties.
func (s Stats) Ranking() []UserTotal {
	out := make([]UserTotal, len(s.PerUser))
	copy(out, s.PerUser)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
