// AngelaMos | 2026
// catalog_test.go

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
	"github.com/vipinpawar/jeopardy-app/internal/storage"
)

type memRepo struct {
	mu    sync.Mutex
	items map[string]*Item
	inUse map[string]bool
}

func newMemRepo(items ...Item) *memRepo {
	r := &memRepo{items: map[string]*Item{}, inUse: map[string]bool{}}
	for i := range items {
		it := items[i]
		r.items[it.ID] = &it
	}
	return r
}

func (r *memRepo) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memRepo) GetByIDs(ctx context.Context, ids []string) ([]Item, error) {
	var out []Item
	for _, id := range ids {
		if it, err := r.GetByID(ctx, id); err == nil {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *memRepo) List(_ context.Context, category string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, it := range r.items {
		if category == "" || it.Category == category {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) Categories(context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	for _, it := range r.items {
		seen[it.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r *memRepo) Update(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrItemNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memRepo) SetImage(_ context.Context, id, imageURL string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return "", ErrItemNotFound
	}
	prev := it.ImageURL
	it.ImageURL = imageURL
	return prev, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inUse[id] {
		return ErrItemInUse
	}
	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) EnsureBucket(context.Context) error { return nil }
func (m *memStore) Ping(context.Context) error         { return nil }
func (m *memStore) Bucket() string                     { return "test" }
func (m *memStore) Close() error                       { return nil }

func (m *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, ct string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.types[key] = ct
	return nil
}

func (m *memStore) Get(_ context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: m.types[key],
		Size:        int64(len(data)),
	}, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type staticTiers map[string]pricing.Tier

func (s staticTiers) EffectiveTier(_ context.Context, userID string) (pricing.Tier, error) {
	if t, ok := s[userID]; ok {
		return t, nil
	}
	return pricing.TierFree, nil
}

const (
	quizPackID = "0b9f4a3e-4c1e-4f57-9d6a-1f2e3d4c5b6a"
	posterID   = "7c1d2e3f-8a9b-4c0d-9e1f-2a3b4c5d6e7f"
)

func seedItems() []Item {
	return []Item{
		{
			ID:            quizPackID,
			Name:          "Quiz Pack",
			Category:      "digital",
			BasePrice:     1000,
			MonthlyPrice:  600,
			LifetimePrice: 800,
		},
		{ID: posterID, Name: "Poster", Category: "print", BasePrice: 300},
	}
}

func newTestHandler(t *testing.T, store storage.ObjectStore) (*memRepo, chi.Router) {
	t.Helper()
	repo := newMemRepo(seedItems()...)
	svc := NewService(ServiceConfig{
		Repo:  repo,
		Tiers: staticTiers{"member": pricing.TierMonthly, "lifer": pricing.TierLifetime},
		Store: store,
	})
	h := NewHandler(svc, 1<<20)

	r := chi.NewRouter()
	h.RegisterRoutes(r, testAuth)
	h.RegisterAdminRoutes(r, testAuth, middleware.RequireAdmin)
	return repo, r
}

// testAuth trusts X-Test-User / X-Test-Role headers in place of a bearer token.
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get("X-Test-User"); uid != "" {
			claims := &middleware.AccessTokenClaims{
				UserID: uid,
				Role:   r.Header.Get("X-Test-Role"),
			}
			r = r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var body struct {
		Success bool            `json:"success"`
		Data    T               `json:"data"`
		Error   *core.ErrorBody `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.True(t, body.Success, "error: %+v", body.Error)
	return body.Data
}

func TestListItemsResolvesPricePerTier(t *testing.T) {
	_, r := newTestHandler(t, nil)

	tests := []struct {
		user string
		want map[string]int64
	}{
		{"", map[string]int64{"Quiz Pack": 1000, "Poster": 300}},
		{"member", map[string]int64{"Quiz Pack": 600, "Poster": 300}},
		{"lifer", map[string]int64{"Quiz Pack": 800, "Poster": 300}},
	}

	for _, tt := range tests {
		t.Run("user="+tt.user, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tt.user != "" {
				req.Header.Set("X-Test-User", tt.user)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			items := decodeData[[]ItemResponse](t, rec)
			require.Len(t, items, 2)
			for _, it := range items {
				assert.Equal(t, tt.want[it.Name], it.Price, it.Name)
			}
		})
	}
}

func TestListItemsByCategory(t *testing.T) {
	_, r := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?category=print", nil))

	items := decodeData[[]ItemResponse](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Poster", items[0].Name)
}

func TestGetItemNotFound(t *testing.T) {
	_, r := newTestHandler(t, nil)

	for _, id := range []string{"not-a-uuid", "11111111-2222-4333-8444-555555555555"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func adminRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("X-Test-User", "admin-1")
	req.Header.Set("X-Test-Role", "admin")
	return req
}

func TestCreateItemValidatesPriceOrder(t *testing.T) {
	repo, r := newTestHandler(t, nil)

	bad := `{"name":"Deck","category":"digital","basePrice":500,"monthlyPrice":600}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/items", strings.NewReader(bad)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "monthly <= yearly <= lifetime <= base")

	tooLarge := `{"name":"Deck","category":"digital","basePrice":1000000000001}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/items", strings.NewReader(tooLarge)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	good := `{"name":"Deck","category":"digital","basePrice":500,"monthlyPrice":300,"lifetimePrice":400}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/items", strings.NewReader(good)))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeData[AdminItemResponse](t, rec)
	assert.Equal(t, int64(500), created.Price)
	_, err := repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	_, r := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/items", strings.NewReader(`{}`))
	req.Header.Set("X-Test-User", "u1")
	req.Header.Set("X-Test-Role", "user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteItemInUse(t *testing.T) {
	repo, r := newTestHandler(t, nil)
	repo.inUse[posterID] = true

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, adminRequest(http.MethodDelete, "/admin/items/"+posterID, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, adminRequest(http.MethodDelete, "/admin/items/"+quizPackID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func multipartImage(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	store := newMemStore()
	repo, r := newTestHandler(t, store)

	upload := func() AdminItemResponse {
		body, ct := multipartImage(t, pngHeader)
		req := adminRequest(http.MethodPost, "/admin/items/"+posterID+"/image", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decodeData[AdminItemResponse](t, rec)
	}

	first := upload()
	assert.True(t, strings.HasPrefix(first.ImageURL, MediaPrefix+"items/"))
	assert.True(t, strings.HasSuffix(first.ImageURL, ".png"))

	second := upload()
	assert.NotEqual(t, first.ImageURL, second.ImageURL)
	assert.Len(t, store.objects, 1)

	stored, err := repo.GetByID(context.Background(), posterID)
	require.NoError(t, err)
	assert.Equal(t, second.ImageURL, stored.ImageURL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(second.ImageURL, "/v1"), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	_, r := newTestHandler(t, newMemStore())

	body, ct := multipartImage(t, []byte("%PDF-1.7 not an image"))
	req := adminRequest(http.MethodPost, "/admin/items/"+posterID+"/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	_, r := newTestHandler(t, nil)

	body, ct := multipartImage(t, pngHeader)
	req := adminRequest(http.MethodPost, "/admin/items/"+posterID+"/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeMediaRejectsTraversal(t *testing.T) {
	_, r := newTestHandler(t, newMemStore())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/items/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc := NewService(ServiceConfig{Repo: newMemRepo(), Tiers: staticTiers{}, Store: newMemStore()})
	_, err := svc.OpenMedia(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
