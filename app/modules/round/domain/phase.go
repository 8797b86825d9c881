package rounddomain

import "time"

// Phase is the derived lifecycle stage of a round.
type Phase string

const (
	PhaseCooldown  Phase = "COOLDOWN"
	PhaseActive    Phase = "ACTIVE"
	PhaseCompleted Phase = "COMPLETED"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// ResolvePhase derives the phase of the window [start, end] at now. Both
// bounds belong to the active phase.
func ResolvePhase(start, end, now time.Time) Phase {
	switch {
	case now.Before(start):
		return PhaseCooldown
	case now.After(end):
		return PhaseCompleted
	default:
		return PhaseActive
	}
}

// TimeRemaining reports how long the given phase lasts from now on.
func TimeRemaining(start, end, now time.Time, phase Phase) time.Duration {
	var d time.Duration
	switch phase {
	case PhaseCooldown:
		d = start.Sub(now)
	case PhaseActive:
		d = end.Sub(now)
	case PhaseCompleted:
		return 0
	}
	if d < 0 {
		return 0
	}
	return d
}

// Phase resolves the round's phase at now.
func (r Round) Phase(now time.Time) Phase {
	return ResolvePhase(r.StartTime, r.EndTime, now)
}

// TimeLeft resolves the time remaining in the round's current phase at now.
func (r Round) TimeLeft(now time.Time) time.Duration {
	return TimeRemaining(r.StartTime, r.EndTime, now, r.Phase(now))
}
