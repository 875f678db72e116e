// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

type shutdownRecorder struct {
	shutdown bool
}

func (s *shutdownRecorder) SetShutdown(v bool) {
	s.shutdown = v
}

func newTestServer(health ShutdownNotifier) *Server {
	return New(Config{
		ServerConfig: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
		HealthHandler: health,
	})
}

func TestRouterErrorsUseEnvelope(t *testing.T) {
	srv := newTestServer(nil)
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "METHOD_NOT_ALLOWED")
}

func TestRouterRecoversPanics(t *testing.T) {
	srv := newTestServer(nil)
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShutdownMarksHealthDraining(t *testing.T) {
	health := &shutdownRecorder{}
	srv := newTestServer(health)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx, 0))
	assert.True(t, health.shutdown)
}

func TestShutdownHonoursContextDuringDrain(t *testing.T) {
	srv := newTestServer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, srv.Shutdown(ctx, time.Minute), context.Canceled)
}
