package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	authservice "github.com/Black-And-White-Club/guss-backend/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	userservice "github.com/Black-And-White-Club/guss-backend/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/Black-And-White-Club/guss-backend/app/shared/respond"
	"go.opentelemetry.io/otel/trace"
)

// AccessTokenCookie carries the session token.
const AccessTokenCookie = "access_token"

// AuthHandlers serves the /auth endpoints.
type AuthHandlers struct {
	service       authservice.Service
	logger        *slog.Logger
	tracer        trace.Tracer
	secureCookies bool
	tokenTTL      time.Duration
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	secureCookies bool,
	tokenTTL time.Duration,
) *AuthHandlers {
	return &AuthHandlers{
		service:       service,
		logger:        logger,
		tracer:        tracer,
		secureCookies: secureCookies,
		tokenTTL:      tokenTTL,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message string           `json:"message"`
	User    *userdomain.User `json:"user"`
}

func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleRegister")
	defer span.End()

	var req credentialsRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUsernameTaken):
			respond.Error(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, userdomain.ErrInvalidUsername), errors.Is(err, userdomain.ErrInvalidPassword):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.ErrorContext(ctx, "HTTP register failed", attr.Error(err))
			respond.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.setSessionCookie(w, session.Token)
	respond.JSON(w, http.StatusCreated, sessionResponse{
		Message: "User registered successfully",
		User:    session.User,
	})
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleLogin")
	defer span.End()

	var req credentialsRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "HTTP login failed", attr.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.setSessionCookie(w, session.Token)
	respond.JSON(w, http.StatusOK, sessionResponse{
		Message: "Login successful",
		User:    session.User,
	})
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// HandleProfile echoes the caller's identity. Requires RequireAuth.
func (h *AuthHandlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authdomain.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respond.JSON(w, http.StatusOK, identity)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}
