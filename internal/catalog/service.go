// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
	"github.com/vipinpawar/jeopardy-app/internal/storage"
)

// MediaPrefix is the public path under which stored images are served.
const MediaPrefix = "/v1/media/"

var (
	ErrItemNotFound     = fmt.Errorf("item: %w", core.ErrNotFound)
	ErrItemInUse        = fmt.Errorf("item has purchases: %w", core.ErrConflict)
	ErrUnsupportedImage = fmt.Errorf("unsupported image type: %w", core.ErrInvalidInput)
	ErrStorageDisabled  = fmt.Errorf("object storage: %w", core.ErrUnavailable)
	ErrInvalidMediaKey  = fmt.Errorf("media key: %w", core.ErrNotFound)
)

// TierSource reports the membership tier a user is priced at right now.
type TierSource interface {
	EffectiveTier(ctx context.Context, userID string) (pricing.Tier, error)
}

type Service struct {
	repo   Repository
	tiers  TierSource
	store  storage.ObjectStore
	logger *slog.Logger
}

type ServiceConfig struct {
	Repo   Repository
	Tiers  TierSource
	Store  storage.ObjectStore
	Logger *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   cfg.Repo,
		tiers:  cfg.Tiers,
		store:  cfg.Store,
		logger: logger,
	}
}

func (s *Service) List(
	ctx context.Context,
	userID, category string,
) ([]ItemResponse, error) {
	tier, err := s.tiers.EffectiveTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToItemResponse(&items[i], tier))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}

	tier, err := s.tiers.EffectiveTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToItemResponse(item, tier)
	return &resp, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Create(ctx context.Context, req ItemRequest) (*AdminItemResponse, error) {
	item := &Item{ID: uuid.New().String()}
	req.apply(item)

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	resp := toAdminItemResponse(item)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req ItemRequest,
) (*AdminItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toAdminItemResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrItemNotFound
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeImage(ctx, item.ImageURL)
	return nil
}

// UploadImage stores the image and points the item at it. The previous
// stored image, if any, is removed afterwards.
func (s *Service) UploadImage(
	ctx context.Context,
	id string,
	body io.Reader,
	size int64,
	contentType string,
) (*AdminItemResponse, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}

	ext, ok := storage.ImageExtension(contentType)
	if !ok {
		return nil, ErrUnsupportedImage
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	key := storage.NewKey("items", ext)
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		return nil, fmt.Errorf("store item image: %w", err)
	}

	previous, err := s.repo.SetImage(ctx, id, MediaPrefix+key)
	if err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}
	s.removeImage(ctx, previous)

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toAdminItemResponse(item)
	return &resp, nil
}

func (s *Service) OpenMedia(ctx context.Context, key string) (*storage.Object, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if !storage.ValidKey(key) {
		return nil, ErrInvalidMediaKey
	}
	return s.store.Get(ctx, key)
}

func (s *Service) removeImage(ctx context.Context, imageURL string) {
	key, ok := strings.CutPrefix(imageURL, MediaPrefix)
	if !ok || s.store == nil {
		return
	}
	s.deleteObject(ctx, key)
}

func (s *Service) deleteObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored image", "key", key, "error", err)
	}
}
