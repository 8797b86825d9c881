package rounddomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePhase(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	end := start.Add(time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{name: "well before start", now: start.Add(-30 * time.Second), want: PhaseCooldown},
		{name: "one nanosecond before start", now: start.Add(-time.Nanosecond), want: PhaseCooldown},
		{name: "exactly at start", now: start, want: PhaseActive},
		{name: "middle of round", now: start.Add(30 * time.Second), want: PhaseActive},
		{name: "exactly at end", now: end, want: PhaseActive},
		{name: "one nanosecond after end", now: end.Add(time.Nanosecond), want: PhaseCompleted},
		{name: "long after end", now: end.Add(24 * time.Hour), want: PhaseCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePhase(start, end, tt.now))
		})
	}
}

func TestResolvePhase_Monotonic(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Second)

	rank := map[Phase]int{PhaseCooldown: 0, PhaseActive: 1, PhaseCompleted: 2}
	prev := PhaseCooldown
	for now := start.Add(-5 * time.Second); now.Before(end.Add(5 * time.Second)); now = now.Add(250 * time.Millisecond) {
		p := ResolvePhase(start, end, now)
		assert.GreaterOrEqual(t, rank[p], rank[prev], "phase went backwards at %s", now)
		prev = p
	}
	assert.Equal(t, PhaseCompleted, prev)
}

func TestTimeRemaining(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	end := start.Add(time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{name: "cooldown counts down to start", now: start.Add(-10 * time.Second), want: 10 * time.Second},
		{name: "active counts down to end", now: start.Add(15 * time.Second), want: 45 * time.Second},
		{name: "zero at end", now: end, want: 0},
		{name: "completed is zero", now: end.Add(time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase := ResolvePhase(start, end, tt.now)
			assert.Equal(t, tt.want, TimeRemaining(start, end, tt.now, phase))
		})
	}
}

func TestRound_PhaseAndTimeLeft(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	start, end := Schedule(created, 30*time.Second, time.Minute)

	assert.Equal(t, created.Add(30*time.Second), start)
	assert.Equal(t, created.Add(90*time.Second), end)

	r := Round{StartTime: start, EndTime: end, CreatedAt: created}
	assert.Equal(t, PhaseCooldown, r.Phase(created))
	assert.Equal(t, 30*time.Second, r.TimeLeft(created))
	assert.Equal(t, PhaseActive, r.Phase(start))
	assert.Equal(t, time.Minute, r.TimeLeft(start))
}

func TestSchedule_ZeroCooldownStartsImmediately(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	start, end := Schedule(created, 0, 5*time.Second)

	assert.Equal(t, created, start)
	assert.Equal(t, PhaseActive, ResolvePhase(start, end, created))
}

func TestFakeClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(base)
	assert.Equal(t, base, c.Now())

	c.Advance(time.Second)
	assert.Equal(t, base.Add(time.Second), c.Now())

	c.Set(base)
	assert.Equal(t, base, c.Now())

	c.NowFn = func() time.Time { return base.Add(time.Hour) }
	assert.Equal(t, base.Add(time.Hour), c.Now())
}
