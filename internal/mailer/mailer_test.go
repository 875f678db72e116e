// AngelaMos | 2026
// mailer_test.go

package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.MailConfig{
		APIKey:      apiKey,
		BaseURL:     srv.URL,
		SenderEmail: "noreply@example.com",
		SenderName:  "Jeopardy Quiz Game",
		Timeout:     2 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendPostsToBrevo(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<1@smtp-relay.brevo.com>"}`))
	}, "secret")

	msg, err := DownloadLinks("buyer@example.com", []Download{{Name: "Quiz Pack", URL: "https://cdn.example.com/pack.zip"}})
	require.NoError(t, err)
	require.NoError(t, client.Send(context.Background(), msg))

	assert.Equal(t, "Your Digital Product Download", got["subject"])
	assert.Contains(t, got["htmlContent"], "https://cdn.example.com/pack.zip")
	sender, ok := got["sender"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "noreply@example.com", sender["email"])
	to, ok := got["to"].([]any)
	require.True(t, ok)
	require.Len(t, to, 1)
}

func TestSendTemplatePassesParams(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<2@smtp-relay.brevo.com>"}`))
	}, "secret")

	err := client.Send(context.Background(), Templated("a@example.com", 7, map[string]any{"NAME": "Ann"}))
	require.NoError(t, err)

	assert.EqualValues(t, 7, got["templateId"])
	params, ok := got["params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ann", params["NAME"])
	assert.NotContains(t, got, "htmlContent")
}

func TestSendSurfacesErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter"}`))
	}, "secret")

	err := client.Send(context.Background(), Templated("a@example.com", 3, map[string]any{"NAME": "A"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSendWithoutKeyIsNotConfigured(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "")

	err := client.Send(context.Background(), Templated("a@example.com", 3, nil))
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "secret")

	err := client.Send(context.Background(), Message{To: []Recipient{{Email: "a@example.com"}}})
	assert.Error(t, err)
}

func TestPasswordResetEscapesLink(t *testing.T) {
	msg, err := PasswordReset("a@example.com", `https://app.example.com/reset?token=a"b`, 30)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTMLContent, `a"b`)
	assert.Contains(t, msg.HTMLContent, "30 minutes")
}
