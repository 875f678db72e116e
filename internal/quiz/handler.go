// AngelaMos | 2026
// handler.go

package quiz

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
		validator: NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/questions", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.Board)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/{questionID}/answer", h.Answer)
			r.Post("/session/reset", h.ResetSession)
		})
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/admin/questions", h.AdminList)
		r.Post("/admin/questions", h.Create)
		r.Put("/admin/questions/{questionID}", h.Update)
		r.Delete("/admin/questions/{questionID}", h.Delete)
	})
}

func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.Board(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, questions)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Answer(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "questionID"),
		req.Answer,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetSession(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, toQuestionResponse(&questions[i]))
	}
	core.OK(w, out)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	q, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, toQuestionResponse(q))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	q, err := h.service.Update(r.Context(), chi.URLParam(r, "questionID"), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, toQuestionResponse(q))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "questionID")); err != nil {
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
	case errors.Is(err, ErrQuestionNotFound):
		core.NotFound(w, "question")
	case errors.Is(err, ErrAlreadyAnswered):
		core.Conflict(w, "question already answered")
	default:
		core.InternalServerError(w, err)
	}
}
