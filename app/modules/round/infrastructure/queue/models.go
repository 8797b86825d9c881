package roundqueue

import (
	"github.com/google/uuid"
)

// QueueName is the dedicated River queue for round jobs.
const QueueName = "round"

// RoundCompletedJob announces a round's results once its window has closed.
type RoundCompletedJob struct {
	RoundID uuid.UUID `json:"round_id"`
}

// Kind returns the job type identifier for River
func (RoundCompletedJob) Kind() string { return "round_completed" }

// JobInfo represents information about a scheduled job (for debugging/monitoring)
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
