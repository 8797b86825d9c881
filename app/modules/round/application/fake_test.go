package roundservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	roundmetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/round"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var testConfig = Config{
	RoundDuration:    60 * time.Second,
	CooldownDuration: 30 * time.Second,
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakePublisher) Events() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}

// ------------------------
// Fake Scheduler
// ------------------------

type scheduledCompletion struct {
	RoundID uuid.UUID
	EndTime time.Time
}

type FakeScheduler struct {
	scheduled []scheduledCompletion

	ScheduleRoundCompletionFunc func(ctx context.Context, roundID uuid.UUID, endTime time.Time) error
}

func (f *FakeScheduler) ScheduleRoundCompletion(ctx context.Context, roundID uuid.UUID, endTime time.Time) error {
	f.scheduled = append(f.scheduled, scheduledCompletion{RoundID: roundID, EndTime: endTime})
	if f.ScheduleRoundCompletionFunc != nil {
		return f.ScheduleRoundCompletionFunc(ctx, roundID, endTime)
	}
	return nil
}

// ------------------------
// In-memory store
// ------------------------

// memoryStore backs the fake repositories with maps so that multi-step
// scenarios observe their own writes.
type memoryStore struct {
	mu     sync.Mutex
	clock  *rounddomain.FakeClock
	rounds map[uuid.UUID]*rounddb.Round
	users  map[uuid.UUID]*userdb.User
	taps   []rounddb.Tap
	locks  int
}

func newMemoryStore(clock *rounddomain.FakeClock) *memoryStore {
	return &memoryStore{
		clock:  clock,
		rounds: make(map[uuid.UUID]*rounddb.Round),
		users:  make(map[uuid.UUID]*userdb.User),
	}
}

func (m *memoryStore) addUser(username string, role userdomain.Role) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.users[id] = &userdb.User{ID: id, Username: username, Role: role, CreatedAt: m.clock.Now()}
	return id
}

func (m *memoryStore) addRound(start, end time.Time) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.rounds[id] = &rounddb.Round{ID: id, StartTime: start, EndTime: end, CreatedAt: m.clock.Now()}
	return id
}

func (m *memoryStore) tapsOf(userID, roundID uuid.UUID) []rounddb.Tap {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []rounddb.Tap
	for _, t := range m.taps {
		if t.UserID == userID && t.RoundID == roundID {
			out = append(out, t)
		}
	}
	return out
}

func (m *memoryStore) roundRepo() *rounddb.FakeRepository {
	return &rounddb.FakeRepository{
		GetRoundByIDFn: func(ctx context.Context, db bun.IDB, id uuid.UUID) (*rounddb.Round, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			r, ok := m.rounds[id]
			if !ok {
				return nil, rounddb.ErrNotFound
			}
			cp := *r
			return &cp, nil
		},
		CreateRoundFn: func(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			cp := *round
			m.rounds[round.ID] = &cp
			return nil
		},
		LockUserRoundFn: func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.locks++
			return nil
		},
		CountTapsFn: func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
			return len(m.tapsOf(userID, roundID)), nil
		},
		CreateTapFn: func(ctx context.Context, db bun.IDB, tap *rounddb.Tap) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			tap.CreatedAt = m.clock.Now().Add(time.Duration(len(m.taps)) * time.Microsecond)
			m.taps = append(m.taps, *tap)
			return nil
		},
		SumScoreFn: func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
			sum := 0
			for _, t := range m.tapsOf(userID, roundID) {
				sum += t.Score
			}
			return sum, nil
		},
		GetTapsForRoundFn: func(ctx context.Context, db bun.IDB, roundID uuid.UUID) ([]rounddomain.TapRecord, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			out := []rounddomain.TapRecord{}
			for _, t := range m.taps {
				if t.RoundID != roundID {
					continue
				}
				out = append(out, rounddomain.TapRecord{
					ID:        t.ID,
					UserID:    t.UserID,
					Username:  m.users[t.UserID].Username,
					Score:     t.Score,
					CreatedAt: t.CreatedAt,
				})
			}
			return out, nil
		},
	}
}

func (m *memoryStore) userRepo() *userdb.FakeRepository {
	return &userdb.FakeRepository{
		GetByIDFn: func(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			u, ok := m.users[id]
			if !ok {
				return nil, userdb.ErrNotFound
			}
			cp := *u
			return &cp, nil
		},
	}
}

func newTestService(repo rounddb.Repository, users userdb.Repository, clock rounddomain.Clock, publisher Publisher) *RoundService {
	return NewRoundService(
		repo,
		users,
		clock,
		testConfig,
		publisher,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		roundmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}
