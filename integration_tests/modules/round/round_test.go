package roundintegrationtests

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain/events"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultConfig = roundservice.Config{
	RoundDuration:    time.Minute,
	CooldownDuration: 30 * time.Second,
}

func TestCreateRound_PersistsAndPublishes(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)

	messages, err := deps.Bus.Subscribe(deps.Ctx, roundevents.RoundCreatedV1)
	require.NoError(t, err)

	round, err := deps.Service.CreateRound(deps.Ctx)
	require.NoError(t, err)

	assert.Equal(t, testEpoch.Add(30*time.Second), round.StartTime)
	assert.Equal(t, testEpoch.Add(90*time.Second), round.EndTime)

	stored, err := deps.Repo.GetRoundByID(deps.Ctx, nil, round.ID)
	require.NoError(t, err)
	assert.True(t, round.StartTime.Equal(stored.StartTime))
	assert.True(t, round.EndTime.Equal(stored.EndTime))

	select {
	case msg := <-messages:
		var payload roundevents.RoundCreatedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, round.ID, payload.RoundID)
		msg.Ack()
	case <-time.After(5 * time.Second):
		t.Fatal("round.created.v1 not delivered")
	}
}

func TestListRounds_NewestFirst(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)

	first, err := deps.Service.CreateRound(deps.Ctx)
	require.NoError(t, err)
	deps.Clock.Advance(time.Second)
	second, err := deps.Service.CreateRound(deps.Ctx)
	require.NoError(t, err)

	rounds, err := deps.Service.ListRounds(deps.Ctx)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, second.ID, rounds[0].ID)
	assert.Equal(t, first.ID, rounds[1].ID)
}

func TestHandleTap_PhaseWindow(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	player := deps.createUser(t, userdomain.RolePlayer)

	round, err := deps.Service.CreateRound(deps.Ctx)
	require.NoError(t, err)

	_, err = deps.Service.HandleTap(deps.Ctx, round.ID, player)
	assert.ErrorIs(t, err, roundservice.ErrRoundNotActive, "cooldown")

	deps.Clock.Set(round.EndTime)
	res, err := deps.Service.HandleTap(deps.Ctx, round.ID, player)
	require.NoError(t, err, "end time is inclusive")
	assert.Equal(t, 1, res.Score)

	deps.Clock.Set(round.EndTime.Add(time.Millisecond))
	_, err = deps.Service.HandleTap(deps.Ctx, round.ID, player)
	assert.ErrorIs(t, err, roundservice.ErrRoundNotActive, "completed")

	_, err = deps.Service.HandleTap(deps.Ctx, uuid.New(), player)
	assert.ErrorIs(t, err, roundservice.ErrRoundNotFound)

	_, err = deps.Service.HandleTap(deps.Ctx, round.ID, uuid.New())
	assert.ErrorIs(t, err, roundservice.ErrUserNotFound)
}

func TestHandleTap_ConcurrentTapsScoreExactlyOnce(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	player := deps.createUser(t, userdomain.RolePlayer)
	round := deps.activeRound(t)

	const taps = 33
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		scores []int
		errs   []error
	)
	for i := 0; i < taps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := deps.Service.HandleTap(deps.Ctx, round.ID, player)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			scores = append(scores, res.Score)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, scores, taps)

	bonuses := 0
	for _, s := range scores {
		if s == rounddomain.BonusPoints {
			bonuses++
		}
	}
	assert.Equal(t, 3, bonuses)

	count, err := deps.Repo.CountTaps(deps.Ctx, nil, player, round.ID)
	require.NoError(t, err)
	assert.Equal(t, taps, count)

	total, err := deps.Repo.SumScore(deps.Ctx, nil, player, round.ID)
	require.NoError(t, err)
	assert.Equal(t, 30+3*rounddomain.BonusPoints, total)
}

func TestHandleTap_ZeroScoreUserLeavesNoTrace(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	reserved := deps.createUser(t, userdomain.RoleZeroScore)
	round := deps.activeRound(t)

	for i := 0; i < 11; i++ {
		res, err := deps.Service.HandleTap(deps.Ctx, round.ID, reserved)
		require.NoError(t, err)
		assert.Equal(t, roundservice.TapResult{}, *res)
	}

	count, err := deps.Repo.CountTaps(deps.Ctx, nil, reserved, round.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	view, err := deps.Service.GetRound(deps.Ctx, round.ID, reserved)
	require.NoError(t, err)
	assert.Zero(t, view.TotalTaps)
	assert.Zero(t, view.MyScore)
}

func TestCompletedRound_WinnerAndTotals(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	strong := deps.createUser(t, userdomain.RolePlayer)
	weak := deps.createUser(t, userdomain.RolePlayer)
	round := deps.activeRound(t)

	last := deps.tapN(t, round.ID, strong, 11)
	assert.Equal(t, 20, last.TotalScore)
	last = deps.tapN(t, round.ID, weak, 10)
	assert.Equal(t, 10, last.TotalScore)

	active, err := deps.Service.GetRound(deps.Ctx, round.ID, weak)
	require.NoError(t, err)
	assert.Equal(t, rounddomain.PhaseActive, active.Status)
	assert.Nil(t, active.Winner)
	assert.Equal(t, 10, active.MyScore)

	deps.Clock.Set(round.EndTime.Add(time.Second))

	done, err := deps.Service.GetRound(deps.Ctx, round.ID, strong)
	require.NoError(t, err)
	assert.Equal(t, rounddomain.PhaseCompleted, done.Status)
	assert.Equal(t, 21, done.TotalTaps)
	assert.Equal(t, 30, done.TotalScore)
	assert.Equal(t, 20, done.MyScore)
	require.NotNil(t, done.Winner)
	assert.Equal(t, 20, done.Winner.Score)

	res, err := deps.Service.GetResults(deps.Ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, res.Ranking, 2)
	assert.Equal(t, strong, res.Ranking[0].UserID)
	assert.Equal(t, weak, res.Ranking[1].UserID)
}

func TestCompletedRound_TieGoesToFirstTapper(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	first := deps.createUser(t, userdomain.RolePlayer)
	second := deps.createUser(t, userdomain.RolePlayer)
	round := deps.activeRound(t)

	deps.tapN(t, round.ID, first, 1)
	deps.tapN(t, round.ID, second, 3)
	deps.tapN(t, round.ID, first, 2)

	deps.Clock.Set(round.EndTime.Add(time.Second))

	res, err := deps.Service.GetResults(deps.Ctx, round.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Winner)
	assert.Equal(t, first, res.Winner.UserID)
	assert.Equal(t, 3, res.Winner.Score)
}

func TestAnnounceCompletion(t *testing.T) {
	deps := SetupTestRoundService(t, defaultConfig)
	player := deps.createUser(t, userdomain.RolePlayer)
	round := deps.activeRound(t)
	deps.tapN(t, round.ID, player, 2)

	messages, err := deps.Bus.Subscribe(deps.Ctx, roundevents.RoundCompletedV1)
	require.NoError(t, err)

	announced, err := deps.Service.AnnounceCompletion(deps.Ctx, round.ID)
	require.NoError(t, err)
	assert.False(t, announced, "round still active")

	deps.Clock.Set(round.EndTime.Add(time.Second))
	announced, err = deps.Service.AnnounceCompletion(deps.Ctx, round.ID)
	require.NoError(t, err)
	assert.True(t, announced)

	select {
	case msg := <-messages:
		var payload roundevents.RoundCompletedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, round.ID, payload.RoundID)
		assert.Equal(t, 2, payload.TotalTaps)
		require.NotNil(t, payload.Winner)
		assert.Equal(t, player, payload.Winner.UserID)
		msg.Ack()
	case <-time.After(5 * time.Second):
		t.Fatal("round.completed.v1 not delivered")
	}

	_, err = deps.Service.AnnounceCompletion(deps.Ctx, uuid.New())
	assert.True(t, errors.Is(err, roundservice.ErrRoundNotFound))
}
