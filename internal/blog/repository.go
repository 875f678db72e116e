// AngelaMos | 2026
// repository.go

package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	ListPosts(ctx context.Context, params ListParams) ([]Post, int, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, p *Post) error
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.image, p.content, p.category_id,
	       c.name AS category_name, p.created_at
	FROM blog_posts p
	JOIN blog_categories c ON c.id = p.category_id`

func (r *repository) ListPosts(ctx context.Context, params ListParams) ([]Post, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM blog_posts WHERE ($1 = '' OR category_id::text = $1)`
	if err := r.db.GetContext(ctx, &total, countQuery, params.CategoryID); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := postSelect + `
		WHERE ($1 = '' OR p.category_id::text = $1)
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $2 OFFSET $3`

	var posts []Post
	err := r.db.SelectContext(ctx, &posts, query,
		params.CategoryID, params.PageSize, params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

func (r *repository) GetPost(ctx context.Context, id string) (*Post, error) {
	var p Post
	err := r.db.GetContext(ctx, &p, postSelect+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &p, nil
}

func (r *repository) CreatePost(ctx context.Context, p *Post) error {
	query := `
		WITH inserted AS (
			INSERT INTO blog_posts (title, image, content, category_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, title, image, content, category_id, created_at
		)
		SELECT i.id, i.title, i.image, i.content, i.category_id,
		       c.name AS category_name, i.created_at
		FROM inserted i
		JOIN blog_categories c ON c.id = i.category_id`

	err := r.db.GetContext(ctx, p, query, p.Title, p.Image, p.Content, p.CategoryID)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.SelectContext(ctx, &categories,
		`SELECT id, name, created_at FROM blog_categories ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO blog_categories (name)
		VALUES ($1)
		RETURNING id, name, created_at`

	err := r.db.GetContext(ctx, c, query, c.Name)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}
