package authjwt

import (
	"errors"
	"os"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-at-least-32-chars-long!!"
	}
	p := NewProvider(secret)

	claims := &authdomain.Claims{
		UserID:   uuid.New(),
		Username: "player1",
		Role:     userdomain.RolePlayer,
	}

	tests := []struct {
		name        string
		setupClaims *authdomain.Claims
		rawToken    string
		ttl         time.Duration
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name:        "success",
			setupClaims: claims,
			ttl:         1 * time.Hour,
			provider:    p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.UserID != claims.UserID {
					t.Errorf("expected userID %s, got %s", claims.UserID, validated.UserID)
				}
				if validated.Username != claims.Username {
					t.Errorf("expected username %s, got %s", claims.Username, validated.Username)
				}
				if validated.Role != claims.Role {
					t.Errorf("expected role %s, got %s", claims.Role, validated.Role)
				}
				if validated.ExpiresAt.Before(time.Now()) {
					t.Errorf("expected expiry in the future, got %s", validated.ExpiresAt)
				}
			},
		},
		{
			name:        "expired token",
			setupClaims: claims,
			ttl:         -1 * time.Hour,
			provider:    p,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "invalid signature",
			setupClaims: claims,
			ttl:         1 * time.Hour,
			provider:    NewProvider("wrong-secret"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			rawToken:    "not.a.jwt",
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "unknown role",
			rawToken:    signRaw(t, secret, "GUEST", uuid.NewString()),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "subject is not a uuid",
			rawToken:    signRaw(t, secret, string(userdomain.RolePlayer), "user-123"),
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.rawToken
			if tt.setupClaims != nil {
				var err error
				token, err = p.GenerateToken(tt.setupClaims, tt.ttl)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
			}

			validateTarget := p
			if tt.provider != nil {
				validateTarget = tt.provider
			}

			validatedClaims, err := validateTarget.ValidateToken(token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.verify != nil {
				tt.verify(t, validatedClaims)
			}
		})
	}
}

func signRaw(t *testing.T, secret, role, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "someone",
		Role:     role,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
