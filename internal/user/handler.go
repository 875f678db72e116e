// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

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

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Route("/users/me", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetMe)
		r.Put("/", h.UpdateMe)
		r.Delete("/", h.DeleteMe)
	})
}

// RegisterAdminRoutes keeps paths flat inside a group so other packages can
// hang sub-resources such as /admin/users/{userID}/membership off the same
// prefix.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)

		r.Get("/admin/users", h.ListUsers)
		r.Get("/admin/users/{userID}", h.GetUser)
		r.Put("/admin/users/{userID}", h.UpdateUser)
		r.Put("/admin/users/{userID}/role", h.UpdateUserRole)
		r.Delete("/admin/users/{userID}", h.DeleteUser)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	core.OK(w, ToUserResponse(u))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, middleware.GetUserID(r.Context()))
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	h.delete(w, r, userID, userID)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListUsersParams{
		Page:       queryInt(q.Get("page"), 1),
		PageSize:   queryInt(q.Get("page_size"), 20),
		Search:     q.Get("search"),
		Role:       q.Get("role"),
		Membership: strings.ToUpper(q.Get("membership")),
	}

	users, total, err := h.service.List(r.Context(), &params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.Paginated(w, ToUserResponseList(users), params.Page, params.PageSize, total)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	core.OK(w, ToUserResponse(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, chi.URLParam(r, "userID"))
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.service.UpdateUserRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	core.OK(w, ToUserResponse(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, middleware.GetUserID(r.Context()), chi.URLParam(r, "userID"))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, userID string) {
	var req UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	core.OK(w, ToUserResponse(u))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, requesterID, targetID string) {
	if err := h.service.Delete(r.Context(), requesterID, targetID); err != nil {
		writeError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "insufficient permissions")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid role")
	default:
		core.InternalServerError(w, err)
	}
}

func queryInt(raw string, fallback int) int {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return fallback
}
