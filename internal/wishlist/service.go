// AngelaMos | 2026
// service.go

package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/cart"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

var (
	ErrAlreadyInWishlist = fmt.Errorf("item already in wishlist: %w", core.ErrConflict)
	ErrItemNotFound      = fmt.Errorf("item: %w", core.ErrNotFound)
)

type CartAdder interface {
	Add(ctx context.Context, userID, itemID string) (*cart.CartItem, error)
}

type Service struct {
	repo  Repository
	cart  CartAdder
	tiers cart.TierSource
}

func NewService(repo Repository, cartAdder CartAdder, tiers cart.TierSource) *Service {
	return &Service{repo: repo, cart: cartAdder, tiers: tiers}
}

func (s *Service) Add(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return core.ErrUnauthorized
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return ErrItemNotFound
	}

	inserted, err := s.repo.Insert(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrAlreadyInWishlist
	}
	return nil
}

// Remove deletes the entry if present. Removing an absent item is not an error.
func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return core.ErrUnauthorized
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return nil
	}

	_, err := s.repo.Delete(ctx, userID, itemID)
	return err
}

// MoveToCart adds the item to the cart and drops it from the wishlist. An
// item already in the cart still leaves the wishlist and is reported via
// AlreadyInCart rather than as an error.
func (s *Service) MoveToCart(ctx context.Context, userID, itemID string) (*MoveResult, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	_, addErr := s.cart.Add(ctx, userID, itemID)
	alreadyInCart := errors.Is(addErr, cart.ErrAlreadyInCart)

	if err := s.Remove(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if addErr != nil && !alreadyInCart {
		return nil, addErr
	}

	return &MoveResult{ItemID: itemID, AlreadyInCart: alreadyInCart}, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]EntryResponse, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	tier, err := s.tiers.EffectiveTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]EntryResponse, 0, len(saved))
	for _, entry := range saved {
		out = append(out, toEntryResponse(entry, tier))
	}
	return out, nil
}

func toEntryResponse(entry Saved, tier pricing.Tier) EntryResponse {
	switch e := entry.(type) {
	case CatalogItem:
		price := pricing.Resolve(pricing.Prices{
			Base:     e.BasePrice,
			Monthly:  e.MonthlyPrice,
			Yearly:   e.YearlyPrice,
			Lifetime: e.LifetimePrice,
		}, tier)
		return EntryResponse{
			ItemID:    e.ItemID,
			Available: true,
			Item: &ItemSummary{
				Name:          e.Name,
				Category:      e.Category,
				BasePrice:     e.BasePrice,
				MonthlyPrice:  e.MonthlyPrice,
				YearlyPrice:   e.YearlyPrice,
				LifetimePrice: e.LifetimePrice,
				ImageURL:      e.ImageURL,
				Price:         price,
			},
			AddedAt: e.AddedAt,
		}
	case WishlistedItem:
		return EntryResponse{ItemID: e.ItemID, AddedAt: e.AddedAt}
	default:
		return EntryResponse{ItemID: entry.savedItemID()}
	}
}
