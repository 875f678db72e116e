// AngelaMos | 2026
// blog_test.go

package blog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

type memRepo struct {
	categories []Category
	posts      []Post
	clock      time.Time
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memRepo) ListPosts(_ context.Context, params ListParams) ([]Post, int, error) {
	var matched []Post
	for _, p := range m.posts {
		if params.CategoryID == "" || p.CategoryID == params.CategoryID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return matched[start:end], total, nil
}

func (m *memRepo) GetPost(_ context.Context, id string) (*Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrPostNotFound
}

func (m *memRepo) CreatePost(_ context.Context, p *Post) error {
	for _, c := range m.categories {
		if c.ID == p.CategoryID {
			p.ID = uuid.NewString()
			p.CategoryName = c.Name
			p.CreatedAt = m.tick()
			m.posts = append(m.posts, *p)
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (m *memRepo) ListCategories(context.Context) ([]Category, error) {
	return m.categories, nil
}

func (m *memRepo) CreateCategory(_ context.Context, c *Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return ErrDuplicateCategory
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = m.tick()
	m.categories = append(m.categories, *c)
	return nil
}

func asAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.ContextWithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: "admin-1",
			Role:   r.Header.Get("X-Test-Role"),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRouter() (*memRepo, chi.Router) {
	repo := &memRepo{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r, asAdmin, middleware.RequireAdmin)
	return repo, r
}

func do(r chi.Router, method, path, body, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDuplicateCategoryIsBadRequest(t *testing.T) {
	_, r := newRouter()

	rec := do(r, http.MethodPost, "/admin/blogs/categories", `{"name":"Trivia"}`, "admin")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodPost, "/admin/blogs/categories", `{"name":"Trivia"}`, "admin")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category already exists")
}

func TestCreatePostRequiresAdmin(t *testing.T) {
	_, r := newRouter()

	rec := do(r, http.MethodPost, "/admin/blogs/categories", `{"name":"Trivia"}`, "user")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPostsNewestFirstAndFilteredByCategory(t *testing.T) {
	repo, r := newRouter()
	ctx := context.Background()
	svc := NewService(repo)

	trivia, err := svc.CreateCategory(ctx, "Trivia")
	require.NoError(t, err)
	news, err := svc.CreateCategory(ctx, "News")
	require.NoError(t, err)

	for _, title := range []string{"first", "second"} {
		_, err := svc.CreatePost(ctx, &CreatePostRequest{Title: title, Image: "x.png", Content: "c", CategoryID: trivia.ID})
		require.NoError(t, err)
	}
	_, err = svc.CreatePost(ctx, &CreatePostRequest{Title: "third", Image: "x.png", Content: "c", CategoryID: news.ID})
	require.NoError(t, err)

	rec := do(r, http.MethodGet, "/blogs?category="+trivia.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []PostResponse  `json:"data"`
		Meta core.Pagination `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "second", body.Data[0].Title)
	assert.Equal(t, "Trivia", body.Data[0].Category.Name)
	assert.Equal(t, 2, body.Meta.Total)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	_, r := newRouter()

	body := `{"title":"t","image":"i.png","content":"c","categoryId":"` + uuid.NewString() + `"}`
	rec := do(r, http.MethodPost, "/admin/blogs", body, "admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPostNotFound(t *testing.T) {
	_, r := newRouter()

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/blogs/"+uuid.NewString(), "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/blogs/garbage", "", "").Code)
}
