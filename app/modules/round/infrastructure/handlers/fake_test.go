package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	CreateRoundFunc        func(ctx context.Context) (*rounddomain.Round, error)
	ListRoundsFunc         func(ctx context.Context) ([]*rounddomain.Round, error)
	GetRoundFunc           func(ctx context.Context, roundID, viewerID uuid.UUID) (*roundservice.RoundWithStats, error)
	HandleTapFunc          func(ctx context.Context, roundID, userID uuid.UUID) (*roundservice.TapResult, error)
	GetResultsFunc         func(ctx context.Context, roundID uuid.UUID) (*roundservice.RoundResults, error)
	AnnounceCompletionFunc func(ctx context.Context, roundID uuid.UUID) (bool, error)
}

func (f *FakeService) CreateRound(ctx context.Context) (*rounddomain.Round, error) {
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx)
	}
	return &rounddomain.Round{ID: uuid.New()}, nil
}

func (f *FakeService) ListRounds(ctx context.Context) ([]*rounddomain.Round, error) {
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) GetRound(ctx context.Context, roundID, viewerID uuid.UUID) (*roundservice.RoundWithStats, error) {
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID, viewerID)
	}
	return nil, roundservice.ErrRoundNotFound
}

func (f *FakeService) HandleTap(ctx context.Context, roundID, userID uuid.UUID) (*roundservice.TapResult, error) {
	if f.HandleTapFunc != nil {
		return f.HandleTapFunc(ctx, roundID, userID)
	}
	return &roundservice.TapResult{Score: 1, TotalScore: 1}, nil
}

func (f *FakeService) GetResults(ctx context.Context, roundID uuid.UUID) (*roundservice.RoundResults, error) {
	if f.GetResultsFunc != nil {
		return f.GetResultsFunc(ctx, roundID)
	}
	return nil, roundservice.ErrRoundNotFound
}

func (f *FakeService) AnnounceCompletion(ctx context.Context, roundID uuid.UUID) (bool, error) {
	if f.AnnounceCompletionFunc != nil {
		return f.AnnounceCompletionFunc(ctx, roundID)
	}
	return false, nil
}

var _ roundservice.Service = (*FakeService)(nil)
