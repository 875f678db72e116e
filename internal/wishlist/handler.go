// AngelaMos | 2026
// handler.go

package wishlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/cart"
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
	r.Route("/wishlist", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/", h.Remove)
		r.Post("/move-to-cart", h.MoveToCart)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, entries)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.Add(r.Context(), middleware.GetUserID(r.Context()), req.ItemID); err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]string{"message": "item added to wishlist"})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), middleware.GetUserID(r.Context()), req.ItemID); err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "item removed from wishlist"})
}

func (h *Handler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.service.MoveToCart(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.ItemID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*ItemRequest, bool) {
	var req ItemRequest
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

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAlreadyInWishlist) {
		core.Conflict(w, "item already in wishlist")
		return
	}
	cart.WriteError(w, err)
}
