package roundhandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundexports "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/exports"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	"github.com/Black-And-White-Club/guss-backend/app/shared/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// RoundHandlers serves the /rounds endpoints.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers instance.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger, tracer trace.Tracer) *RoundHandlers {
	return &RoundHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type createRoundResponse struct {
	Message string             `json:"message"`
	Round   *rounddomain.Round `json:"round"`
}

type listRoundsResponse struct {
	Rounds []*rounddomain.Round `json:"rounds"`
}

type getRoundResponse struct {
	Round *roundservice.RoundWithStats `json:"round"`
}

type tapResponse struct {
	Message    string `json:"message"`
	TapScore   int    `json:"tapScore"`
	TotalScore int    `json:"totalScore"`
}

func (h *RoundHandlers) HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleCreateRound")
	defer span.End()

	round, err := h.service.CreateRound(ctx)
	if err != nil {
		h.writeError(w, r, "create round", err)
		return
	}

	respond.JSON(w, http.StatusCreated, createRoundResponse{
		Message: "Round created successfully",
		Round:   round,
	})
}

func (h *RoundHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleListRounds")
	defer span.End()

	rounds, err := h.service.ListRounds(ctx)
	if err != nil {
		h.writeError(w, r, "list rounds", err)
		return
	}
	if rounds == nil {
		rounds = []*rounddomain.Round{}
	}

	respond.JSON(w, http.StatusOK, listRoundsResponse{Rounds: rounds})
}

// HandleGetRound returns the round with live stats. The caller's own score is
// included when the request is authenticated.
func (h *RoundHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGetRound")
	defer span.End()

	roundID, ok := h.roundID(w, r)
	if !ok {
		return
	}

	viewerID := uuid.Nil
	if identity, ok := authdomain.IdentityFromContext(ctx); ok {
		viewerID = identity.UserID
	}

	round, err := h.service.GetRound(ctx, roundID, viewerID)
	if err != nil {
		h.writeError(w, r, "get round", err)
		return
	}

	respond.JSON(w, http.StatusOK, getRoundResponse{Round: round})
}

// HandleTap records a tap for the authenticated caller. Requires RequireAuth.
func (h *RoundHandlers) HandleTap(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleTap")
	defer span.End()

	identity, ok := authdomain.IdentityFromContext(ctx)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	roundID, ok := h.roundID(w, r)
	if !ok {
		return
	}

	result, err := h.service.HandleTap(ctx, roundID, identity.UserID)
	if err != nil {
		h.writeError(w, r, "tap", err)
		return
	}

	respond.JSON(w, http.StatusOK, tapResponse{
		Message:    "Tap recorded successfully",
		TapScore:   result.Score,
		TotalScore: result.TotalScore,
	})
}

func (h *RoundHandlers) HandleResultsXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleResultsXLSX")
	defer span.End()

	roundID, ok := h.roundID(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetResults(ctx, roundID)
	if err != nil {
		h.writeError(w, r, "results export", err)
		return
	}

	data, err := roundexports.WriteResultsXLSX(res)
	if err != nil {
		h.writeError(w, r, "results export", err)
		return
	}

	w.Header().Set("Content-Type", roundexports.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="round-%s.xlsx"`, roundID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *RoundHandlers) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleChartPNG")
	defer span.End()

	roundID, ok := h.roundID(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetResults(ctx, roundID)
	if err != nil {
		h.writeError(w, r, "score chart", err)
		return
	}

	data, err := roundexports.RenderScoreChart(res)
	if err != nil {
		h.writeError(w, r, "score chart", err)
		return
	}

	w.Header().Set("Content-Type", roundexports.PNGContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *RoundHandlers) roundID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid round ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *RoundHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, roundservice.ErrRoundNotFound):
		respond.Error(w, http.StatusNotFound, "Round not found")
	case errors.Is(err, roundservice.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, roundservice.ErrRoundNotActive):
		respond.Error(w, http.StatusBadRequest, "Round is not active")
	default:
		h.logger.ErrorContext(r.Context(), "HTTP "+op+" failed", attr.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
