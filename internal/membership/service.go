// AngelaMos | 2026
// service.go

package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

var ErrInvalidMembership = fmt.Errorf("invalid membership type: %w", core.ErrInvalidInput)

const (
	SourceCheckout = "self"
	SourceAdmin    = "admin"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	UpdateMembership(
		ctx context.Context,
		id string,
		tier pricing.Tier,
		start time.Time,
		end *time.Time,
	) (*user.User, error)
}

type Service struct {
	users UserStore
	now   func() time.Time
}

type Option func(*Service)

// WithClock overrides time.Now, used to pin validity windows in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(users UserStore, opts ...Option) *Service {
	s := &Service{users: users, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the validity window starting at start. LIFETIME has no end.
func Window(tier pricing.Tier, start time.Time) (*time.Time, error) {
	var end time.Time

	switch tier {
	case pricing.TierMonthly:
		end = start.AddDate(0, 1, 0)
	case pricing.TierYearly:
		end = start.AddDate(1, 0, 0)
	case pricing.TierLifetime:
		return nil, nil
	default:
		return nil, ErrInvalidMembership
	}

	return &end, nil
}

// SetMembership activates tier for userID starting now. Any earlier window is
// replaced rather than extended.
func (s *Service) SetMembership(
	ctx context.Context,
	userID, membershipType string,
) (*user.User, error) {
	return s.set(ctx, userID, membershipType, SourceCheckout)
}

// Override is the admin path; same rules, recorded under a different source.
func (s *Service) Override(
	ctx context.Context,
	userID, membershipType string,
) (*user.User, error) {
	return s.set(ctx, userID, membershipType, SourceAdmin)
}

func (s *Service) set(
	ctx context.Context,
	userID, membershipType, source string,
) (*user.User, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	tier, ok := pricing.ExactTier(membershipType)
	if !ok || !tier.Purchasable() {
		return nil, ErrInvalidMembership
	}

	start := s.now().UTC()
	end, err := Window(tier, start)
	if err != nil {
		return nil, err
	}

	u, err := s.users.UpdateMembership(ctx, userID, tier, start, end)
	if err != nil {
		return nil, fmt.Errorf("set membership: %w", err)
	}

	metrics.ObserveMembershipChange(tier.String(), source)
	return u, nil
}

// Revoke drops userID back to FREE and clears the window.
func (s *Service) Revoke(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.UpdateMembership(ctx, userID, pricing.TierFree, s.now().UTC(), nil)
	if err != nil {
		return nil, fmt.Errorf("revoke membership: %w", err)
	}

	metrics.ObserveMembershipChange(pricing.TierFree.String(), SourceAdmin)
	return u, nil
}

// EffectiveTier loads userID and applies expiry. Anonymous callers are FREE.
func (s *Service) EffectiveTier(ctx context.Context, userID string) (pricing.Tier, error) {
	if userID == "" {
		return pricing.TierFree, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return pricing.TierFree, fmt.Errorf("load membership: %w", err)
	}

	return u.EffectiveTier(s.now()), nil
}

func (s *Service) Status(ctx context.Context, userID string) (*StatusResponse, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}

	effective := u.EffectiveTier(s.now())
	return &StatusResponse{
		Membership:          u.Membership.String(),
		EffectiveMembership: effective.String(),
		Active:              effective != pricing.TierFree,
		StartDate:           u.MembershipStartDate,
		EndDate:             u.MembershipEndDate,
	}, nil
}
