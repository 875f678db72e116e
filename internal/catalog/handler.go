// AngelaMos | 2026
// handler.go

package catalog

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

const (
	defaultMaxUploadSize = 5 << 20
	sniffLen             = 512
)

type Handler struct {
	service       *Service
	validator     *validator.Validate
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{
		service:       service,
		validator:     NewValidator(),
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes mounts the public catalog. optionalAuth lets signed-in
// members see their tier price while anonymous visitors see the base price.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/items", func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/", h.ListItems)
		r.Get("/categories", h.ListCategories)
		r.Get("/{itemID}", h.GetItem)
	})

	r.Get("/media/*", h.ServeMedia)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/admin/items", h.CreateItem)
		r.Put("/admin/items/{itemID}", h.UpdateItem)
		r.Delete("/admin/items/{itemID}", h.DeleteItem)
		r.Post("/admin/items/{itemID}/image", h.UploadImage)
	})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(
		r.Context(),
		middleware.GetUserID(r.Context()),
		r.URL.Query().Get("category"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, categories)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "itemID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, item)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), *req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "itemID"), *req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

// UploadImage accepts a multipart "image" field. The content type is sniffed
// from the bytes rather than trusted from the client.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+sniffLen*2)

	file, header, err := r.FormFile("image")
	if err != nil {
		core.BadRequest(w, "image file is required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	if header.Size > h.maxUploadSize {
		core.BadRequest(w, "image exceeds maximum upload size")
		return
	}

	buffered := bufio.NewReaderSize(file, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		core.BadRequest(w, "unreadable image")
		return
	}
	contentType := http.DetectContentType(head)

	item, err := h.service.UploadImage(
		r.Context(),
		chi.URLParam(r, "itemID"),
		buffered,
		header.Size,
		contentType,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, item)
}

func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	obj, err := h.service.OpenMedia(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer obj.Body.Close() //nolint:errcheck // read-only stream

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	//nolint:errcheck // client may disconnect mid-stream
	_, _ = io.Copy(w, obj.Body)
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (*ItemRequest, bool) {
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
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "item")
	case errors.Is(err, ErrItemInUse):
		core.JSONError(w, core.NewAppError(
			err,
			"item has purchases and cannot be deleted",
			http.StatusConflict,
			"ITEM_IN_USE",
		))
	case errors.Is(err, ErrUnsupportedImage):
		core.BadRequest(w, "image must be a jpeg, png, webp or gif")
	case errors.Is(err, core.ErrUnavailable):
		core.JSONError(w, core.UnavailableError("image storage is not configured"))
	default:
		core.InternalServerError(w, err)
	}
}
