// AngelaMos | 2026
// handler.go

package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/core"
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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.Submit)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.Submit(r.Context(), &req); err != nil {
		if errors.Is(err, ErrUnavailable) {
			core.JSONError(w, core.UnavailableError("contact form is not available"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "emails sent successfully"})
}
