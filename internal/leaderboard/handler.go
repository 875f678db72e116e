// AngelaMos | 2026
// handler.go

package leaderboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/leaderboard", h.Leaderboard)
	r.With(authenticator).Post("/score", h.SetScore)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, entries)
}

func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.SetTotal(r.Context(), middleware.GetUserID(r.Context()), *req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnauthorized):
			core.Unauthorized(w, "")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "totalAmount must not be negative")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ScoreResponse{ID: u.ID, TotalAmount: u.TotalAmount})
}
