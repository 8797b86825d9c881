package rounddomain

import (
	"sync"
	"time"
)

// FakeClock is a settable Clock for tests.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	NowFn func() time.Time
}

// NewFakeClock returns a FakeClock frozen at now.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (f *FakeClock) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

var (
	_ Clock = SystemClock{}
	_ Clock = (*FakeClock)(nil)
)
