package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/jwt"
	userservice "github.com/Black-And-White-Club/guss-backend/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{
		UserID:   uuid.New(),
		Username: "test-user",
		Role:     userdomain.RolePlayer,
	}, nil
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

// ------------------------
// Fake User Service
// ------------------------

type FakeUserService struct {
	trace []string

	CreateUserFunc        func(ctx context.Context, username, passwordHash string) (*userdomain.User, error)
	GetUserFunc           func(ctx context.Context, id uuid.UUID) (*userdomain.User, error)
	GetUserByUsernameFunc func(ctx context.Context, username string) (*userdomain.User, error)
	CountUsersFunc        func(ctx context.Context) (int, error)
}

func (f *FakeUserService) Trace() []string {
	return f.trace
}

func (f *FakeUserService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserService) CreateUser(ctx context.Context, username, passwordHash string) (*userdomain.User, error) {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, username, passwordHash)
	}
	return &userdomain.User{ID: uuid.New(), Username: username, Role: userdomain.RolePlayer}, nil
}

func (f *FakeUserService) GetUser(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, id)
	}
	return nil, userservice.ErrUserNotFound
}

func (f *FakeUserService) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	f.record("GetUserByUsername")
	if f.GetUserByUsernameFunc != nil {
		return f.GetUserByUsernameFunc(ctx, username)
	}
	return nil, userservice.ErrUserNotFound
}

func (f *FakeUserService) CountUsers(ctx context.Context) (int, error) {
	f.record("CountUsers")
	if f.CountUsersFunc != nil {
		return f.CountUsersFunc(ctx)
	}
	return 0, nil
}

var _ userservice.Service = (*FakeUserService)(nil)
