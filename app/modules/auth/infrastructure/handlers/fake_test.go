package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/guss-backend/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	RegisterFunc     func(ctx context.Context, username, password string) (*authservice.Session, error)
	LoginFunc        func(ctx context.Context, username, password string) (*authservice.Session, error)
	AuthenticateFunc func(ctx context.Context, token string) (*authdomain.Identity, error)
}

func (f *FakeService) Register(ctx context.Context, username, password string) (*authservice.Session, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, username, password)
	}
	return &authservice.Session{
		Token: "fake-token",
		User:  &userdomain.User{ID: uuid.New(), Username: username, Role: userdomain.RolePlayer},
	}, nil
}

func (f *FakeService) Login(ctx context.Context, username, password string) (*authservice.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, username, password)
	}
	return &authservice.Session{
		Token: "fake-token",
		User:  &userdomain.User{ID: uuid.New(), Username: username, Role: userdomain.RolePlayer},
	}, nil
}

func (f *FakeService) Authenticate(ctx context.Context, token string) (*authdomain.Identity, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	return nil, authservice.ErrInvalidToken
}

var _ authservice.Service = (*FakeService)(nil)
