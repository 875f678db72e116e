// AngelaMos | 2026
// service.go

package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

var (
	ErrPostNotFound      = fmt.Errorf("blog post: %w", core.ErrNotFound)
	ErrCategoryNotFound  = fmt.Errorf("blog category: %w", core.ErrNotFound)
	ErrDuplicateCategory = fmt.Errorf("category already exists: %w", core.ErrInvalidInput)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPosts(ctx context.Context, params ListParams) ([]Post, int, error) {
	params.Normalize()
	if params.CategoryID != "" {
		if _, err := uuid.Parse(params.CategoryID); err != nil {
			return []Post{}, 0, nil
		}
	}
	return s.repo.ListPosts(ctx, params)
}

func (s *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPostNotFound
	}
	return s.repo.GetPost(ctx, id)
}

func (s *Service) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return nil, ErrCategoryNotFound
	}

	p := &Post{
		Title:      strings.TrimSpace(req.Title),
		Image:      strings.TrimSpace(req.Image),
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name)}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
