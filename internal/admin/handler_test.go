// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type fixedCounter map[string]int64

func (f fixedCounter) Count(_ context.Context, table string) (int64, error) {
	n, ok := f[table]
	if !ok {
		return 0, errors.New("unknown table")
	}
	return n, nil
}

func passthrough(next http.Handler) http.Handler { return next }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough, passthrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboardCounts(t *testing.T) {
	counts := fixedCounter{}
	for i, table := range DashboardTables {
		counts[table] = int64(i + 1)
	}

	rec := serve(NewHandler(HandlerConfig{Counter: counts}), "/admin/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Counts, len(DashboardTables))
	assert.Equal(t, "blog_posts", body.Data.Counts[0].Table)

	for _, c := range body.Data.Counts {
		assert.Equal(t, counts[c.Table], c.Rows)
	}
}

func TestDashboardCountFailure(t *testing.T) {
	rec := serve(NewHandler(HandlerConfig{Counter: fixedCounter{"users": 1}}), "/admin/dashboard")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardWithoutCounter(t *testing.T) {
	rec := serve(NewHandler(HandlerConfig{}), "/admin/dashboard")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSystemStatsReportsUnhealthyDependency(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBPing:    func(context.Context) error { return errors.New("down") },
		RedisPing: func(context.Context) error { return nil },
	})

	rec := serve(h, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                `json:"success"`
		Data    SystemStatsResponse `json:"data"`
		Error   *core.ErrorBody     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Database.Healthy)
	assert.True(t, body.Data.Redis.Healthy)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}
