// AngelaMos | 2026
// service_test.go

package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

type fakeUsers struct {
	users map[string]*user.User
}

func newFakeUsers(ids ...string) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*user.User)}
	for _, id := range ids {
		f.users[id] = &user.User{ID: id, Membership: pricing.TierFree}
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateMembership(
	_ context.Context,
	id string,
	tier pricing.Tier,
	start time.Time,
	end *time.Time,
) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Membership = tier
	u.MembershipStartDate = &start
	u.MembershipEndDate = end
	cp := *u
	return &cp, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSetMembershipWindows(t *testing.T) {
	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		tier    string
		wantEnd *time.Time
	}{
		{"MONTHLY", ptr(time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC))},
		{"YEARLY", ptr(time.Date(2027, 3, 15, 10, 0, 0, 0, time.UTC))},
		{"LIFETIME", nil},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			svc := NewService(newFakeUsers("u1"), WithClock(fixedClock(start)))

			u, err := svc.SetMembership(context.Background(), "u1", tt.tier)
			require.NoError(t, err)

			require.NotNil(t, u.MembershipStartDate)
			assert.True(t, start.Equal(*u.MembershipStartDate))
			if tt.wantEnd == nil {
				assert.Nil(t, u.MembershipEndDate)
			} else {
				require.NotNil(t, u.MembershipEndDate)
				assert.True(t, tt.wantEnd.Equal(*u.MembershipEndDate))
			}
		})
	}
}

func TestSetMembershipOverwritesPriorWindow(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	users := newFakeUsers("u1")
	now := first
	svc := NewService(users, WithClock(func() time.Time { return now }))

	_, err := svc.SetMembership(context.Background(), "u1", "YEARLY")
	require.NoError(t, err)

	now = second
	u, err := svc.SetMembership(context.Background(), "u1", "MONTHLY")
	require.NoError(t, err)

	assert.Equal(t, pricing.TierMonthly, u.Membership)
	assert.True(t, second.Equal(*u.MembershipStartDate))
	assert.True(t, second.AddDate(0, 1, 0).Equal(*u.MembershipEndDate))
}

func TestSetMembershipRejectsInvalidType(t *testing.T) {
	svc := NewService(newFakeUsers("u1"))

	for _, tier := range []string{"", "FREE", "WEEKLY", "monthly", " MONTHLY", "Yearly"} {
		_, err := svc.SetMembership(context.Background(), "u1", tier)
		assert.ErrorIs(t, err, ErrInvalidMembership, tier)
		assert.ErrorIs(t, err, core.ErrInvalidInput, tier)
	}
}

func TestSetMembershipRequiresUser(t *testing.T) {
	svc := NewService(newFakeUsers())

	_, err := svc.SetMembership(context.Background(), "", "MONTHLY")
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = svc.SetMembership(context.Background(), "ghost", "MONTHLY")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEffectiveTierExpires(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	users := newFakeUsers("u1")
	now := start
	svc := NewService(users, WithClock(func() time.Time { return now }))

	_, err := svc.SetMembership(context.Background(), "u1", "MONTHLY")
	require.NoError(t, err)

	tier, err := svc.EffectiveTier(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, pricing.TierMonthly, tier)

	now = start.AddDate(0, 1, 0)
	tier, err = svc.EffectiveTier(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, pricing.TierFree, tier)

	status, err := svc.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "MONTHLY", status.Membership)
	assert.Equal(t, "FREE", status.EffectiveMembership)
	assert.False(t, status.Active)
}

func TestEffectiveTierAnonymous(t *testing.T) {
	tier, err := NewService(newFakeUsers()).EffectiveTier(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, pricing.TierFree, tier)
}

func TestRevoke(t *testing.T) {
	users := newFakeUsers("u1")
	svc := NewService(users)

	_, err := svc.Override(context.Background(), "u1", "LIFETIME")
	require.NoError(t, err)

	u, err := svc.Revoke(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, pricing.TierFree, u.Membership)
	assert.Nil(t, u.MembershipEndDate)
}

func ptr(t time.Time) *time.Time {
	return &t
}
