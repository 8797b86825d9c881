package roundrouter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/handlers"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/Black-And-White-Club/guss-backend/app/shared/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

type stubService struct {
	roundservice.Service
}

func (stubService) CreateRound(ctx context.Context) (*rounddomain.Round, error) {
	return &rounddomain.Round{ID: uuid.New()}, nil
}

func (stubService) ListRounds(ctx context.Context) ([]*rounddomain.Round, error) {
	return nil, nil
}

func (stubService) HandleTap(ctx context.Context, roundID, userID uuid.UUID) (*roundservice.TapResult, error) {
	return &roundservice.TapResult{Score: 1, TotalScore: 1}, nil
}

// headerAuth authenticates callers by the X-Role header.
func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("X-Role")
		if role == "" {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		identity := authdomain.Identity{UserID: uuid.New(), Username: "tester", Role: userdomain.Role(role)}
		next.ServeHTTP(w, r.WithContext(authdomain.WithIdentity(r.Context(), identity)))
	})
}

func newTestMux() http.Handler {
	handlers := roundhandlers.NewRoundHandlers(
		stubService{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		noop.NewTracerProvider().Tracer("test"),
	)
	mux := chi.NewRouter()
	NewRouter(handlers, headerAuth).Mount(mux)
	return mux
}

func TestRouter_Mount(t *testing.T) {
	roundPath := BasePath + "/" + uuid.NewString()

	tests := []struct {
		name       string
		method     string
		path       string
		role       userdomain.Role
		wantStatus int
	}{
		{"list requires auth", http.MethodGet, BasePath, "", http.StatusUnauthorized},
		{"player lists rounds", http.MethodGet, BasePath, userdomain.RolePlayer, http.StatusOK},
		{"player cannot create", http.MethodPost, BasePath, userdomain.RolePlayer, http.StatusForbidden},
		{"zero score user cannot create", http.MethodPost, BasePath, userdomain.RoleZeroScore, http.StatusForbidden},
		{"admin creates", http.MethodPost, BasePath, userdomain.RoleAdmin, http.StatusCreated},
		{"tap requires auth", http.MethodPost, roundPath + "/tap", "", http.StatusUnauthorized},
		{"player taps", http.MethodPost, roundPath + "/tap", userdomain.RolePlayer, http.StatusOK},
		{"tap rejects malformed id", http.MethodPost, BasePath + "/nope/tap", userdomain.RolePlayer, http.StatusBadRequest},
		{"unsupported method", http.MethodDelete, roundPath, userdomain.RoleAdmin, http.StatusMethodNotAllowed},
	}

	mux := newTestMux()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("X-Role", string(tt.role))
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
