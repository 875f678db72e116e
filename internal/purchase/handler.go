// AngelaMos | 2026
// handler.go

package purchase

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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/purchase", h.Checkout)
		r.Get("/orders", h.Orders)
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	records, err := h.service.Checkout(r.Context(), middleware.GetUserID(r.Context()), req.refs())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := CheckoutResponse{
		Success:   true,
		Message:   "purchase successful",
		Purchases: make([]RecordResponse, 0, len(records)),
	}
	for i := range records {
		resp.Purchases = append(resp.Purchases, toRecordResponse(&records[i]))
	}

	core.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Orders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, toOrderResponses(orders))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, ErrEmptyCheckout):
		core.BadRequest(w, "no items to purchase")
	case errors.Is(err, ErrNoValidItems):
		core.BadRequest(w, "no valid items found")
	case errors.Is(err, ErrQuantityRange):
		core.BadRequest(w, "quantity must be at most 10000")
	case errors.Is(err, ErrPriceOverflow):
		core.BadRequest(w, "line total out of range")
	case errors.Is(err, ErrItemNotFound):
		core.NotFound(w, "item")
	default:
		core.InternalServerError(w, err)
	}
}
