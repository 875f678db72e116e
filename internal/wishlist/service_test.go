// AngelaMos | 2026
// service_test.go

package wishlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/cart"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type memRepo struct {
	mu      sync.Mutex
	catalog map[string]CatalogItem
	entries map[string][]string
}

func newMemRepo(items ...CatalogItem) *memRepo {
	m := &memRepo{catalog: map[string]CatalogItem{}, entries: map[string][]string{}}
	for _, it := range items {
		m.catalog[it.ItemID] = it
	}
	return m
}

func (m *memRepo) Insert(_ context.Context, userID, itemID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.catalog[itemID]; !ok {
		return false, ErrItemNotFound
	}
	for _, id := range m.entries[userID] {
		if id == itemID {
			return false, nil
		}
	}
	m.entries[userID] = append(m.entries[userID], itemID)
	return true, nil
}

func (m *memRepo) Delete(_ context.Context, userID, itemID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.entries[userID]
	for i, id := range ids {
		if id == itemID {
			m.entries[userID] = append(ids[:i], ids[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memRepo) List(_ context.Context, userID string) ([]Saved, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Saved
	for _, id := range m.entries[userID] {
		if it, ok := m.catalog[id]; ok {
			out = append(out, it)
			continue
		}
		out = append(out, WishlistedItem{ItemID: id})
	}
	return out, nil
}

func (m *memRepo) has(userID, itemID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.entries[userID] {
		if id == itemID {
			return true
		}
	}
	return false
}

type fakeCart struct {
	inCart map[string]bool
	err    error
}

func (f *fakeCart) Add(_ context.Context, userID, itemID string) (*cart.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := userID + "/" + itemID
	if f.inCart[key] {
		return nil, cart.ErrAlreadyInCart
	}
	f.inCart[key] = true
	return &cart.CartItem{UserID: userID, ItemID: itemID, Quantity: 1}, nil
}

type staticTiers pricing.Tier

func (s staticTiers) EffectiveTier(context.Context, string) (pricing.Tier, error) {
	return pricing.Tier(s), nil
}

func setup(tier pricing.Tier) (*Service, *memRepo, *fakeCart, string) {
	itemID := uuid.NewString()
	repo := newMemRepo(CatalogItem{
		ItemID:        itemID,
		Name:          "Quiz Pack",
		Category:      "Digital",
		BasePrice:     1000,
		MonthlyPrice:  600,
		YearlyPrice:   700,
		LifetimePrice: 800,
		AddedAt:       time.Now(),
	})
	fc := &fakeCart{inCart: map[string]bool{}}
	return NewService(repo, fc, staticTiers(tier)), repo, fc, itemID
}

func TestAddTwiceReportsAlreadyInWishlist(t *testing.T) {
	svc, repo, _, itemID := setup(pricing.TierFree)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", itemID))

	err := svc.Add(ctx, "u1", itemID)
	require.ErrorIs(t, err, ErrAlreadyInWishlist)
	assert.ErrorIs(t, err, core.ErrConflict)

	entries, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddUnknownItem(t *testing.T) {
	svc, _, _, _ := setup(pricing.TierFree)

	assert.ErrorIs(t, svc.Add(context.Background(), "u1", uuid.NewString()), ErrItemNotFound)
	assert.ErrorIs(t, svc.Add(context.Background(), "u1", "nope"), ErrItemNotFound)
	assert.ErrorIs(t, svc.Add(context.Background(), "", uuid.NewString()), core.ErrUnauthorized)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc, _, _, itemID := setup(pricing.TierFree)

	assert.NoError(t, svc.Remove(context.Background(), "u1", itemID))
	assert.NoError(t, svc.Remove(context.Background(), "u1", "not-a-uuid"))
}

func TestMoveToCart(t *testing.T) {
	svc, repo, fc, itemID := setup(pricing.TierFree)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", itemID))

	result, err := svc.MoveToCart(ctx, "u1", itemID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyInCart)
	assert.False(t, repo.has("u1", itemID))
	assert.True(t, fc.inCart["u1/"+itemID])
}

func TestMoveToCartWhenAlreadyInCartStillLeavesWishlist(t *testing.T) {
	svc, repo, fc, itemID := setup(pricing.TierFree)
	ctx := context.Background()

	fc.inCart["u1/"+itemID] = true
	require.NoError(t, svc.Add(ctx, "u1", itemID))

	result, err := svc.MoveToCart(ctx, "u1", itemID)
	require.NoError(t, err)
	assert.True(t, result.AlreadyInCart)
	assert.False(t, repo.has("u1", itemID))
}

func TestMoveToCartPropagatesOtherFailures(t *testing.T) {
	svc, _, fc, itemID := setup(pricing.TierFree)
	fc.err = cart.ErrItemNotFound

	_, err := svc.MoveToCart(context.Background(), "u1", itemID)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestListResolvesTierPriceAndBareEntries(t *testing.T) {
	svc, repo, _, itemID := setup(pricing.TierMonthly)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", itemID))
	gone := uuid.NewString()
	repo.entries["u1"] = append(repo.entries["u1"], gone)

	entries, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Available)
	require.NotNil(t, entries[0].Item)
	assert.Equal(t, int64(600), entries[0].Item.Price)

	assert.Equal(t, gone, entries[1].ItemID)
	assert.False(t, entries[1].Available)
	assert.Nil(t, entries[1].Item)
}
