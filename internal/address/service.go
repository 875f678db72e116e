// AngelaMos | 2026
// service.go

package address

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

var ErrAddressNotFound = fmt.Errorf("address: %w", core.ErrNotFound)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]Address, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

// Save updates the owned address when req.ID is set and creates a new
// DefaultType address otherwise.
func (s *Service) Save(ctx context.Context, userID string, req *SaveRequest) (*Address, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	a := &Address{
		UserID:  userID,
		Type:    DefaultType,
		Street:  strings.TrimSpace(req.Street),
		City:    strings.TrimSpace(req.City),
		State:   strings.TrimSpace(req.State),
		Pin:     strings.TrimSpace(req.Pin),
		Mobile:  strings.TrimSpace(req.Mobile),
		Country: strings.TrimSpace(req.Country),
	}

	if req.ID == "" {
		if err := s.repo.Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, ErrAddressNotFound
	}
	a.ID = req.ID
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return core.ErrUnauthorized
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrAddressNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}
