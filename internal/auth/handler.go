// AngelaMos | 2026
// handler.go

package auth

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

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/refresh", h.Refresh)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
			r.Post("/logout-all", h.LogoutAll)
			r.Get("/sessions", h.GetSessions)
			r.Delete("/sessions/{sessionID}", h.RevokeSession)
			r.Post("/change-password", h.ChangePassword)
		})
	})
}

var (
	errReuseResponse = core.NewAppError(
		core.ErrTokenRevoked,
		"token reuse detected, all sessions in this login were revoked",
		http.StatusUnauthorized,
		"TOKEN_REUSE_DETECTED",
	)
	errExistsResponse = core.NewAppError(
		core.ErrDuplicateKey,
		"user already exists",
		http.StatusBadRequest,
		"USER_EXISTS",
	)
)

// writeError maps service errors onto the envelope. badCreds is the message
// used for ErrInvalidCredentials, which differs between login and password
// change.
func writeError(w http.ResponseWriter, err error, badCreds string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONError(w, core.UnauthorizedError(badCreds))
	case errors.Is(err, ErrTokenReuse):
		core.JSONError(w, errReuseResponse)
	case errors.Is(err, ErrEmailExists):
		core.JSONError(w, errExistsResponse)
	case errors.Is(err, ErrCaptchaFailed):
		core.BadRequest(w, "CAPTCHA verification failed")
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "not your session")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "session")
	default:
		core.InternalServerError(w, err)
	}
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "invalid email or password")
		return
	}
	core.OK(w, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.Created(w, resp)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.OK(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err, "")
		return
	}
	core.NoContent(w)
}

func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.LogoutAll(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err, "")
		return
	}
	core.NoContent(w)
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.GetActiveSessions(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.OK(w, SessionsResponse{Sessions: sessions})
}

func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	err := h.service.RevokeSession(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "sessionID"),
	)
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.NoContent(w)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.ChangePassword(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		writeError(w, err, "current password is incorrect")
		return
	}
	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetCurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "user")
		return
	}
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.OK(w, u)
}

// ForgotPassword answers the same way whether or not the address is known.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, map[string]string{"message": "if the account exists, a reset email has been sent"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, err, "")
		return
	}
	core.OK(w, map[string]string{"message": "password has been reset"})
}
