// AngelaMos | 2026
// quiz_test.go

package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

type memRepo struct {
	mu        sync.Mutex
	questions map[string]Question
}

func newMemRepo(qs ...Question) *memRepo {
	m := &memRepo{questions: map[string]Question{}}
	for _, q := range qs {
		m.questions[q.ID] = q
	}
	return m
}

func (m *memRepo) Create(_ context.Context, q *Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = uuid.NewString()
	m.questions[q.ID] = *q
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return &q, nil
}

func (m *memRepo) List(context.Context) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Question, 0, len(m.questions))
	for _, q := range m.questions {
		out = append(out, q)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, q *Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[q.ID]; !ok {
		return ErrQuestionNotFound
	}
	m.questions[q.ID] = *q
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

type memTracker struct {
	mu       sync.Mutex
	sessions map[string]map[string]bool
}

func newMemTracker() *memTracker {
	return &memTracker{sessions: map[string]map[string]bool{}}
}

func (t *memTracker) MarkAnswered(_ context.Context, userID, questionID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		s = map[string]bool{}
		t.sessions[userID] = s
	}
	if s[questionID] {
		return false, nil
	}
	s[questionID] = true
	return true, nil
}

func (t *memTracker) Unmark(_ context.Context, userID, questionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions[userID], questionID)
	return nil
}

func (t *memTracker) Answered(_ context.Context, userID string) (map[string]bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := map[string]bool{}
	for id := range t.sessions[userID] {
		out[id] = true
	}
	return out, nil
}

func (t *memTracker) Reset(_ context.Context, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, userID)
	return nil
}

type memScorer struct {
	mu     sync.Mutex
	totals map[string]int64
	err    error
}

func (s *memScorer) AddScore(_ context.Context, userID string, delta int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.totals[userID] += delta
	return &user.User{ID: userID, TotalAmount: s.totals[userID]}, nil
}

func capitals() Question {
	return Question{
		ID:            uuid.NewString(),
		Category:      "Geography",
		Points:        200,
		Question:      "Capital of France?",
		Options:       []string{"Paris", "Lyon", "Nice"},
		CorrectAnswer: "Paris",
	}
}

func newTestService(qs ...Question) (*Service, *memScorer) {
	scorer := &memScorer{totals: map[string]int64{}}
	return NewService(newMemRepo(qs...), newMemTracker(), scorer), scorer
}

func TestAnswerCorrectAwardsPointsOnce(t *testing.T) {
	q := capitals()
	svc, scorer := newTestService(q)
	ctx := context.Background()

	result, err := svc.Answer(ctx, "u1", q.ID, " Paris ")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 200, result.PointsAwarded)
	assert.Equal(t, int64(200), result.TotalAmount)

	_, err = svc.Answer(ctx, "u1", q.ID, "Paris")
	require.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, int64(200), scorer.totals["u1"])
}

func TestAnswerScoreFailureReleasesQuestion(t *testing.T) {
	q := capitals()
	svc, scorer := newTestService(q)
	ctx := context.Background()
	scorer.err = errors.New("database unavailable")

	_, err := svc.Answer(ctx, "u1", q.ID, "Paris")
	require.Error(t, err)

	answered, err := svc.tracker.Answered(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, answered[q.ID])

	scorer.err = nil
	result, err := svc.Answer(ctx, "u1", q.ID, "Paris")
	require.NoError(t, err)
	assert.Equal(t, 200, result.PointsAwarded)
	assert.Equal(t, int64(200), scorer.totals["u1"])
}

func TestAnswerWrongAwardsNothing(t *testing.T) {
	q := capitals()
	svc, scorer := newTestService(q)

	result, err := svc.Answer(context.Background(), "u1", q.ID, "Lyon")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "Paris", result.CorrectAnswer)
	assert.Zero(t, result.PointsAwarded)
	assert.Zero(t, scorer.totals["u1"])
}

func TestResetSessionAllowsReplay(t *testing.T) {
	q := capitals()
	svc, scorer := newTestService(q)
	ctx := context.Background()

	_, err := svc.Answer(ctx, "u1", q.ID, "Paris")
	require.NoError(t, err)
	require.NoError(t, svc.ResetSession(ctx, "u1"))

	_, err = svc.Answer(ctx, "u1", q.ID, "Paris")
	require.NoError(t, err)
	assert.Equal(t, int64(400), scorer.totals["u1"])
}

func TestAnswerErrors(t *testing.T) {
	svc, _ := newTestService(capitals())
	ctx := context.Background()

	_, err := svc.Answer(ctx, "", uuid.NewString(), "x")
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = svc.Answer(ctx, "u1", "bogus", "x")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.Answer(ctx, "u1", uuid.NewString(), "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestBoardHidesAnswersAndMarksAnswered(t *testing.T) {
	q := capitals()
	svc, _ := newTestService(q)
	ctx := context.Background()

	_, err := svc.Answer(ctx, "u1", q.ID, "Lyon")
	require.NoError(t, err)

	board, err := svc.Board(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.True(t, board[0].Answered)

	raw, err := json.Marshal(board)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctAnswer")

	anon, err := svc.Board(ctx, "")
	require.NoError(t, err)
	assert.False(t, anon[0].Answered)
}

func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Test-User")
		if id == "" {
			core.Unauthorized(w, "")
			return
		}
		ctx := middleware.ContextWithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: id,
			Role:   r.Header.Get("X-Test-Role"),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestAdminCreateRequiresAnswerAmongOptions(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	r := chi.NewRouter()
	h.RegisterAdminRoutes(r, testAuth, middleware.RequireAdmin)

	body := `{"category":"Geo","points":100,"question":"Q?","options":["a","b"],"correctAnswer":"c"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader(body))
	req.Header.Set("X-Test-User", "admin-1")
	req.Header.Set("X-Test-Role", "admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "correctAnswer must be one of the options")

	body = `{"category":"Geo","points":100,"question":"Q?","options":["a","b"],"correctAnswer":"b"}`
	req = httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader(body))
	req.Header.Set("X-Test-User", "admin-1")
	req.Header.Set("X-Test-Role", "admin")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"correctAnswer":"b"`)
}

func TestAnswerRouteRequiresAuth(t *testing.T) {
	q := capitals()
	svc, _ := newTestService(q)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, testAuth, func(next http.Handler) http.Handler { return next })

	req := httptest.NewRequest(http.MethodPost, "/questions/"+q.ID+"/answer", strings.NewReader(`{"answer":"Paris"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/questions/"+q.ID+"/answer", strings.NewReader(`{"answer":"Paris"}`))
	req.Header.Set("X-Test-User", "u1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"correct":true`)
}
