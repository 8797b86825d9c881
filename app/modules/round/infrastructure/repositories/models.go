package rounddb

import (
	"time"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Round is the persisted round schedule.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	StartTime     time.Time `bun:"start_time,notnull" json:"start_time"`
	EndTime       time.Time `bun:"end_time,notnull" json:"end_time"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ToDomain converts the row into the domain round.
func (r *Round) ToDomain() *rounddomain.Round {
	return &rounddomain.Round{
		ID:        r.ID,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// Tap is a single accepted tap. CreatedAt is assigned by the database at
// insert time so that concurrent inserts order the same way they commit.
type Tap struct {
	bun.BaseModel `bun:"table:taps,alias:t"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"`
	RoundID       uuid.UUID `bun:"round_id,type:uuid,notnull" json:"round_id"`
	Score         int       `bun:"score,notnull" json:"score"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:clock_timestamp()" json:"created_at"`
}

// TapWithUsername is a tap row joined with the tapping user's name.
type TapWithUsername struct {
	Tap      `bun:",extend"`
	Username string `bun:"username,scanonly"`
}

// ToDomain converts the joined row into the aggregation input.
func (t *TapWithUsername) ToDomain() rounddomain.TapRecord {
	return rounddomain.TapRecord{
		ID:        t.ID,
		UserID:    t.UserID,
		Username:  t.Username,
		Score:     t.Score,
		CreatedAt: t.CreatedAt.UTC(),
	}
}
