// AngelaMos | 2026
// handler.go

package blog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/categories", h.Categories)
		r.Get("/{postID}", h.GetPost)
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

		r.Post("/admin/blogs", h.CreatePost)
		r.Post("/admin/blogs/categories", h.CreateCategory)
	})
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 20),
		CategoryID: r.URL.Query().Get("category"),
	}

	posts, total, err := h.service.ListPosts(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	params.Normalize()

	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	core.Paginated(w, out, params.Page, params.PageSize, total)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, toPostResponse(post))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	core.OK(w, out)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !h.decode(w, r, &req) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, toPostResponse(post))
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, toCategoryResponse(category))
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
	case errors.Is(err, ErrPostNotFound):
		core.NotFound(w, "blog post")
	case errors.Is(err, ErrCategoryNotFound):
		core.NotFound(w, "blog category")
	case errors.Is(err, ErrDuplicateCategory):
		core.BadRequest(w, "category already exists")
	default:
		core.InternalServerError(w, err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}
