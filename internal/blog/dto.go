// AngelaMos | 2026
// dto.go

package blog

import (
	"time"
)

type ListParams struct {
	Page       int
	PageSize   int
	CategoryID string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type CreatePostRequest struct {
	Title      string `json:"title"      validate:"required,max=255"`
	Image      string `json:"image"      validate:"required"`
	Content    string `json:"content"    validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Image     string           `json:"image"`
	Content   string           `json:"content"`
	Category  CategoryResponse `json:"category"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Image:     p.Image,
		Content:   p.Content,
		Category:  CategoryResponse{ID: p.CategoryID, Name: p.CategoryName},
		CreatedAt: p.CreatedAt,
	}
}
