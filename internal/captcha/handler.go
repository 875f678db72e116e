// AngelaMos | 2026
// handler.go

package captcha

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type Handler struct {
	verifier  *Verifier
	validator *validator.Validate
}

func NewHandler(verifier *Verifier) *Handler {
	return &Handler{
		verifier:  verifier,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/captcha/verify", h.Verify)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if err := h.verifier.Verify(r.Context(), req.Token, remoteIP); err != nil {
		if IsVerificationFailure(err) {
			core.BadRequest(w, "CAPTCHA verification failed")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]bool{"verified": true})
}
