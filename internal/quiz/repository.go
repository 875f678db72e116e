// AngelaMos | 2026
// repository.go

package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	List(ctx context.Context) ([]Question, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const questionColumns = `id, category, points, question, options, correct_answer, created_at, updated_at`

func (r *repository) Create(ctx context.Context, q *Question) error {
	query := `
		INSERT INTO questions (category, points, question, options, correct_answer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + questionColumns

	err := r.db.GetContext(ctx, q, query,
		q.Category, q.Points, q.Question, q.Options, q.CorrectAnswer,
	)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var q Question
	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &q, nil
}

func (r *repository) List(ctx context.Context) ([]Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		ORDER BY category ASC, points ASC, id ASC`

	var questions []Question
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *repository) Update(ctx context.Context, q *Question) error {
	query := `
		UPDATE questions
		SET category = $2, points = $3, question = $4, options = $5,
		    correct_answer = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + questionColumns

	err := r.db.GetContext(ctx, q, query,
		q.ID, q.Category, q.Points, q.Question, q.Options, q.CorrectAnswer,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrQuestionNotFound
	}
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if rows == 0 {
		return ErrQuestionNotFound
	}

	return nil
}
