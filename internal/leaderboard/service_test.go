// AngelaMos | 2026
// service_test.go

package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

type memScores struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemScores(users ...user.User) *memScores {
	m := &memScores{users: map[string]*user.User{}}
	for i := range users {
		u := users[i]
		m.users[u.ID] = &u
	}
	return m
}

func (m *memScores) AddScore(_ context.Context, id string, delta int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("add score: %w", core.ErrNotFound)
	}
	u.TotalAmount += delta
	cp := *u
	return &cp, nil
}

func (m *memScores) SetScore(_ context.Context, id string, total int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("set score: %w", core.ErrNotFound)
	}
	u.TotalAmount = total
	cp := *u
	return &cp, nil
}

func (m *memScores) ListByScore(_ context.Context, limit int) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAmount != out[j].TotalAmount {
			return out[i].TotalAmount > out[j].TotalAmount
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestLeaderboardOrderingTiesAndBadges(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newMemScores(
		user.User{ID: "a", Username: "ann", TotalAmount: 50, CreatedAt: base},
		user.User{ID: "b", Username: "bob", TotalAmount: 200, CreatedAt: base.Add(time.Hour)},
		user.User{ID: "c", Username: "cat", TotalAmount: 200, CreatedAt: base},
		user.User{ID: "d", Username: "dan", TotalAmount: 10, CreatedAt: base},
	)

	entries, err := NewService(store, 0).Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	got := make([]string, 0, 4)
	for _, e := range entries {
		got = append(got, e.Username)
	}
	assert.Equal(t, []string{"cat", "bob", "ann", "dan"}, got)
	assert.Equal(t, "🥇 1st", entries[0].Badge)
	assert.Equal(t, "🥈 2nd", entries[1].Badge)
	assert.Equal(t, "🥉 3rd", entries[2].Badge)
	assert.Equal(t, "4th", entries[3].Badge)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestLeaderboardListsEveryUserByDefault(t *testing.T) {
	users := make([]user.User, 0, 150)
	for i := range 150 {
		users = append(users, user.User{
			ID:          fmt.Sprintf("u%03d", i),
			TotalAmount: int64(i),
		})
	}
	store := newMemScores(users...)

	all, err := NewService(store, 0).Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 150)
	assert.Equal(t, int64(149), all[0].TotalAmount)

	top, err := NewService(store, 3).Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestRankBadge(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "🥇 1st"},
		{2, "🥈 2nd"},
		{3, "🥉 3rd"},
		{4, "4th"},
		{11, "11th"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RankBadge(tt.rank))
	}
}

func TestAddScoreRejectsNonPositive(t *testing.T) {
	svc := NewService(newMemScores(user.User{ID: "a"}), 10)

	_, err := svc.AddScore(context.Background(), "a", 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	u, err := svc.AddScore(context.Background(), "a", 400)
	require.NoError(t, err)
	assert.Equal(t, int64(400), u.TotalAmount)
}

func TestConcurrentAddScoreLosesNothing(t *testing.T) {
	store := newMemScores(user.User{ID: "a"})
	svc := NewService(store, 10)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddScore(context.Background(), "a", 100)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(2000), store.users["a"].TotalAmount)
}

func TestSetTotal(t *testing.T) {
	svc := NewService(newMemScores(user.User{ID: "a", TotalAmount: 300}), 10)

	_, err := svc.SetTotal(context.Background(), "a", -1)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	u, err := svc.SetTotal(context.Background(), "a", 1200)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), u.TotalAmount)

	_, err = svc.SetTotal(context.Background(), "", 5)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
