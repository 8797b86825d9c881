package rounddomain

import (
	"time"

	"github.com/google/uuid"
)

// Round is a scheduled, time-boxed game instance. StartTime and EndTime are
// fixed at creation; the phase is always derived from them.
type Round struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// Schedule computes the active window of a round created at now.
func Schedule(now time.Time, cooldown, duration time.Duration) (start, end time.Time) {
	start = now.Add(cooldown)
	end = start.Add(duration)
	return start, end
}
