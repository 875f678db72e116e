// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

// memRepo implements the subset of Repository the service paths under test
// reach. Anything else panics through the nil embedded interface.
type memRepo struct {
	Repository
	users map[string]*User
}

func newMemRepo(users ...*User) *memRepo {
	m := &memRepo{users: map[string]*User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) IncrementTokenVersion(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.TokenVersion++
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func TestCreateNormalizesAndDefaultsToFree(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	info, err := svc.Create(context.Background(), "  ann ", "  Ann@Example.COM ", "hash")
	require.NoError(t, err)

	assert.Equal(t, "ann", info.Username)
	assert.Equal(t, "ann@example.com", info.Email)
	assert.Equal(t, RoleUser, info.Role)
	assert.Equal(t, "FREE", info.Membership)
	assert.Len(t, repo.users, 1)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemRepo(&User{ID: "u1", Role: RoleUser}))

	_, err := svc.UpdateUserRole(context.Background(), "u1", "owner")
	require.ErrorIs(t, err, core.ErrInvalidInput)

	u, err := svc.UpdateUserRole(context.Background(), "u1", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, 1, u.TokenVersion, "role change revokes old tokens")
}

func TestCanDeleteUser(t *testing.T) {
	svc := NewService(newMemRepo(
		&User{ID: "admin", Role: RoleAdmin},
		&User{ID: "admin2", Role: RoleAdmin},
		&User{ID: "ann", Role: RoleUser},
		&User{ID: "bob", Role: RoleUser},
	))
	ctx := context.Background()

	assert.NoError(t, svc.CanDeleteUser(ctx, "ann", "ann"), "self delete")
	assert.NoError(t, svc.CanDeleteUser(ctx, "admin", "bob"))
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "ann", "bob"), core.ErrForbidden)
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "admin", "admin2"), core.ErrForbidden)
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "admin", "ghost"), core.ErrNotFound)
}

func TestGetRequiresUser(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestDeleteChecksPermission(t *testing.T) {
	repo := newMemRepo(
		&User{ID: "admin", Role: RoleAdmin},
		&User{ID: "ann", Role: RoleUser},
		&User{ID: "bob", Role: RoleUser},
	)
	svc := NewService(repo)
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, "ann", "bob"), core.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "admin", "bob"))
	require.NoError(t, svc.Delete(ctx, "ann", "ann"))
	assert.Len(t, repo.users, 1)
}

func TestTokenViewUsesEffectiveTier(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lapsed := now.Add(-24 * time.Hour)
	svc := NewService(newMemRepo(&User{
		ID:                "u1",
		Membership:        pricing.TierYearly,
		MembershipEndDate: &lapsed,
	}))
	svc.now = func() time.Time { return now }

	info, err := svc.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "FREE", info.Membership)
}

func TestEffectiveTier(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		user User
		want pricing.Tier
	}{
		{"free", User{Membership: pricing.TierFree}, pricing.TierFree},
		{"active monthly", User{Membership: pricing.TierMonthly, MembershipEndDate: &future}, pricing.TierMonthly},
		{"expired yearly", User{Membership: pricing.TierYearly, MembershipEndDate: &past}, pricing.TierFree},
		{"ends exactly now", User{Membership: pricing.TierMonthly, MembershipEndDate: &now}, pricing.TierFree},
		{"lifetime", User{Membership: pricing.TierLifetime}, pricing.TierLifetime},
		{"garbage", User{Membership: pricing.Tier("GOLD")}, pricing.TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.EffectiveTier(now))
		})
	}
}
