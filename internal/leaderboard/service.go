// AngelaMos | 2026
// service.go

package leaderboard

import (
	"context"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

var (
	ErrInvalidDelta = fmt.Errorf("score delta must be positive: %w", core.ErrInvalidInput)
	ErrInvalidTotal = fmt.Errorf("total amount must not be negative: %w", core.ErrInvalidInput)
)

type ScoreStore interface {
	AddScore(ctx context.Context, id string, delta int64) (*user.User, error)
	SetScore(ctx context.Context, id string, total int64) (*user.User, error)
	ListByScore(ctx context.Context, limit int) ([]user.User, error)
}

type Service struct {
	store ScoreStore
	limit int
}

// NewService returns a leaderboard capped at limit rows. A limit of zero or
// less ranks every user.
func NewService(store ScoreStore, limit int) *Service {
	if limit < 0 {
		limit = 0
	}
	return &Service{store: store, limit: limit}
}

// AddScore credits delta points atomically.
func (s *Service) AddScore(ctx context.Context, userID string, delta int64) (*user.User, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	if delta <= 0 {
		return nil, ErrInvalidDelta
	}
	u, err := s.store.AddScore(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	metrics.ObservePoints(delta)
	return u, nil
}

// SetTotal overwrites the cumulative total reported by the client.
func (s *Service) SetTotal(ctx context.Context, userID string, total int64) (*user.User, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	if total < 0 {
		return nil, ErrInvalidTotal
	}
	return s.store.SetScore(ctx, userID, total)
}

func (s *Service) Leaderboard(ctx context.Context) ([]Entry, error) {
	users, err := s.store.ListByScore(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for i := range users {
		rank := i + 1
		entries = append(entries, Entry{
			Rank:        rank,
			Badge:       RankBadge(rank),
			ID:          users[i].ID,
			Username:    users[i].Username,
			Email:       users[i].Email,
			TotalAmount: users[i].TotalAmount,
		})
	}
	return entries, nil
}

func RankBadge(rank int) string {
	switch rank {
	case 1:
		return "🥇 1st"
	case 2:
		return "🥈 2nd"
	case 3:
		return "🥉 3rd"
	default:
		return fmt.Sprintf("%dth", rank)
	}
}
