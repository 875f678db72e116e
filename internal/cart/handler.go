// AngelaMos | 2026
// handler.go

package cart

import (
	"encoding/json"
	"errors"
	"io"
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
	r.Route("/cart", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/", h.Remove)
		r.Put("/quantity", h.UpdateQuantity)
		r.Post("/clear", h.Clear)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	core.OK(w, cart)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.Add(r.Context(), middleware.GetUserID(r.Context()), req.ItemID)
	if err != nil {
		WriteError(w, err)
		return
	}

	core.Created(w, toCartItemResponse(item))
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.UpdateQuantity(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.CartItemID,
		req.Quantity,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	core.OK(w, toCartItemResponse(item))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.Remove(r.Context(), middleware.GetUserID(r.Context()), req.CartItemID)
	if err != nil {
		WriteError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "item removed from cart"})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		core.BadRequest(w, "invalid request body")
		return
	}

	removed, err := h.service.Clear(r.Context(), middleware.GetUserID(r.Context()), req.ItemIDs)
	if err != nil {
		WriteError(w, err)
		return
	}

	core.OK(w, map[string]int64{"removed": removed})
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

// WriteError maps cart errors to responses. The wishlist reuses it for
// move-to-cart failures.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, ErrAlreadyInCart):
		core.Conflict(w, "item already in cart")
	case errors.Is(err, ErrCartItemNotFound):
		core.NotFound(w, "cart item")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "item")
	case errors.Is(err, ErrInvalidQuantity):
		core.BadRequest(w, "quantity must be between 1 and 10000")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
