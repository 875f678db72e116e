// AngelaMos | 2026
// handler.go

package membership

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
	"github.com/vipinpawar/jeopardy-app/internal/user"
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
	r.Route("/membership", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetStatus)
		r.Post("/", h.SetMembership)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Put("/admin/users/{userID}/membership", h.OverrideMembership)
		r.Delete("/admin/users/{userID}/membership", h.RevokeMembership)
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) SetMembership(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	u, err := h.service.SetMembership(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.MembershipType,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) OverrideMembership(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	u, err := h.service.Override(r.Context(), chi.URLParam(r, "userID"), req.MembershipType)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) RevokeMembership(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Revoke(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*SetMembershipRequest, bool) {
	var req SetMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return nil, false
	}

	return &req, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, ErrInvalidMembership):
		core.BadRequest(w, "invalid membership type")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	default:
		core.InternalServerError(w, err)
	}
}
