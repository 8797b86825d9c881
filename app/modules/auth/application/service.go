package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/jwt"
	userservice "github.com/Black-And-White-Club/guss-backend/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	usermetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/user"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
	BcryptCost int
}

// service implements the Service interface.
type service struct {
	users       userservice.Service
	repo        userdb.Repository
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	metrics     usermetrics.UserMetrics
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	users userservice.Service,
	repo userdb.Repository,
	config Config,
	logger *slog.Logger,
	metrics usermetrics.UserMetrics,
	tracer trace.Tracer,
) Service {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &service{
		users:       users,
		repo:        repo,
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
	}
}

const DefaultTokenTTL = time.Hour

// Register creates an account and opens a session for it.
func (s *service) Register(ctx context.Context, username, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := userdomain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		s.logger.WarnContext(ctx, "Registration rejected",
			attr.String("username", username),
			attr.Error(err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered",
		attr.UserID(user.ID),
		attr.String("role", user.Role.String()),
	)

	return s.issue(ctx, user)
}

// Login checks the credentials and opens a session.
func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	stored, err := s.repo.GetByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			s.recordLogin(ctx, false)
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Login failed", attr.String("username", username))
		s.recordLogin(ctx, false)
		return nil, ErrInvalidCredentials
	}

	s.recordLogin(ctx, true)
	return s.issue(ctx, stored.ToDomain())
}

// Authenticate verifies a session token.
func (s *service) Authenticate(ctx context.Context, token string) (*authdomain.Identity, error) {
	_, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(token)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	identity := claims.Identity()
	return &identity, nil
}

func (s *service) issue(ctx context.Context, user *userdomain.User) (*Session, error) {
	claims := &authdomain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	token, err := s.jwtProvider.GenerateToken(claims, s.config.DefaultTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", attr.UserID(user.ID), attr.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(s.config.DefaultTTL),
		User:      user,
	}, nil
}

func (s *service) recordLogin(ctx context.Context, success bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, success)
	}
}
