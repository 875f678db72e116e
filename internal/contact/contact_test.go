// AngelaMos | 2026
// contact_test.go

package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/mailer"
)

type fakeMailer struct {
	enabled bool
	sent    []mailer.Message
	failAt  int
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.failAt > 0 && len(f.sent)+1 == f.failAt {
		return errors.New("brevo returned 500")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Enabled() bool          { return f.enabled }
func (f *fakeMailer) AdminEmail() string     { return "admin@example.com" }
func (f *fakeMailer) UserTemplateID() int64  { return 11 }
func (f *fakeMailer) AdminTemplateID() int64 { return 12 }

func post(t *testing.T, m *fakeMailer, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(NewService(m)).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body)))
	return rec
}

func TestSubmitSendsUserAndAdminMail(t *testing.T) {
	m := &fakeMailer{enabled: true}

	rec := post(t, m, `{"name":"Ann","email":"ann@example.com","message":"Loved the quiz pack!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, m.sent, 2)

	assert.Equal(t, "ann@example.com", m.sent[0].To[0].Email)
	assert.Equal(t, int64(11), m.sent[0].TemplateID)
	assert.Equal(t, "Ann", m.sent[0].Params["NAME"])

	assert.Equal(t, "admin@example.com", m.sent[1].To[0].Email)
	assert.Equal(t, int64(12), m.sent[1].TemplateID)
	assert.Equal(t, "ann@example.com", m.sent[1].Params["EMAIL"])
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"A","email":"ann@example.com","message":"long enough message"}`},
		{"bad email", `{"name":"Ann","email":"nope","message":"long enough message"}`},
		{"short message", `{"name":"Ann","email":"ann@example.com","message":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMailer{enabled: true}
			rec := post(t, m, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, m.sent)
		})
	}
}

func TestSubmitWithoutMailIsUnavailable(t *testing.T) {
	rec := post(t, &fakeMailer{}, `{"name":"Ann","email":"ann@example.com","message":"Loved the quiz pack!"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSubmitSendFailureIs500(t *testing.T) {
	m := &fakeMailer{enabled: true, failAt: 2}
	rec := post(t, m, `{"name":"Ann","email":"ann@example.com","message":"Loved the quiz pack!"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, m.sent, 1)
}
