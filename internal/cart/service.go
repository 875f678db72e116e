// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

var (
	ErrAlreadyInCart    = fmt.Errorf("item already in cart: %w", core.ErrConflict)
	ErrItemNotFound     = fmt.Errorf("item: %w", core.ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("cart item: %w", core.ErrNotFound)
	ErrInvalidQuantity  = fmt.Errorf("quantity must be between 1 and %d: %w",
		pricing.MaxQuantity, core.ErrInvalidInput)
	ErrTotalOverflow = fmt.Errorf("cart total out of range: %w", core.ErrInvalidInput)
)

type TierSource interface {
	EffectiveTier(ctx context.Context, userID string) (pricing.Tier, error)
}

type Service struct {
	repo  Repository
	tiers TierSource
}

func NewService(repo Repository, tiers TierSource) *Service {
	return &Service{repo: repo, tiers: tiers}
}

// Add puts itemID in the user's cart with quantity 1. A second add of the
// same item reports ErrAlreadyInCart and leaves the quantity alone.
func (s *Service) Add(ctx context.Context, userID, itemID string) (*CartItem, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, ErrItemNotFound
	}

	item, inserted, err := s.repo.Insert(ctx, userID, itemID)
	if err != nil {
		metrics.ObserveCartAdd("error")
		return nil, err
	}
	if !inserted {
		metrics.ObserveCartAdd("duplicate")
		return nil, ErrAlreadyInCart
	}

	metrics.ObserveCartAdd("added")
	return item, nil
}

func (s *Service) UpdateQuantity(
	ctx context.Context,
	userID, cartItemID string,
	quantity int,
) (*CartItem, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	if quantity < 1 || quantity > pricing.MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	if _, err := uuid.Parse(cartItemID); err != nil {
		return nil, ErrCartItemNotFound
	}

	return s.repo.UpdateQuantity(ctx, userID, cartItemID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, cartItemID string) error {
	if userID == "" {
		return core.ErrUnauthorized
	}
	if _, err := uuid.Parse(cartItemID); err != nil {
		return ErrCartItemNotFound
	}

	return s.repo.Remove(ctx, userID, cartItemID)
}

// List prices every line at the user's current effective tier.
func (s *Service) List(ctx context.Context, userID string) (*CartResponse, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	tier, err := s.tiers.EffectiveTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Items:      make([]LineResponse, 0, len(lines)),
		Membership: tier.String(),
	}
	for i := range lines {
		line, ok := toLineResponse(&lines[i], tier)
		if !ok || resp.Total > math.MaxInt64-line.LineTotal {
			return nil, ErrTotalOverflow
		}
		resp.Total += line.LineTotal
		resp.Items = append(resp.Items, line)
	}

	return resp, nil
}

// Clear is safe to repeat. Invalid ids are ignored rather than rejected.
func (s *Service) Clear(ctx context.Context, userID string, itemIDs []string) (int64, error) {
	if userID == "" {
		return 0, core.ErrUnauthorized
	}

	valid := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(itemIDs) > 0 && len(valid) == 0 {
		return 0, nil
	}

	return s.repo.Clear(ctx, userID, valid)
}
