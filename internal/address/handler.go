// AngelaMos | 2026
// handler.go

package address

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
	r.Route("/addresses", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Put("/", h.Save)
		r.Delete("/", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, ToAddressResponse(&addresses[i]))
	}
	core.OK(w, out)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Save(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, SaveResponse{
		Message: "address updated successfully",
		Address: ToAddressResponse(a),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), req.AddressID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "address deleted successfully"})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, ErrAddressNotFound):
		core.NotFound(w, "address")
	default:
		core.InternalServerError(w, err)
	}
}
