// AngelaMos | 2026
// service.go

package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

var (
	ErrQuestionNotFound = fmt.Errorf("question: %w", core.ErrNotFound)
	ErrAlreadyAnswered  = fmt.Errorf("question already answered: %w", core.ErrConflict)
)

type Scorer interface {
	AddScore(ctx context.Context, userID string, delta int64) (*user.User, error)
}

type Service struct {
	repo    Repository
	tracker Tracker
	scorer  Scorer
}

func NewService(repo Repository, tracker Tracker, scorer Scorer) *Service {
	return &Service{repo: repo, tracker: tracker, scorer: scorer}
}

// Board lists every question without its answer. For a signed-in user each
// question also carries whether it was answered in the current session.
func (s *Service) Board(ctx context.Context, userID string) ([]PublicQuestion, error) {
	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	answered := map[string]bool{}
	if userID != "" {
		answered, err = s.tracker.Answered(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]PublicQuestion, 0, len(questions))
	for i := range questions {
		out = append(out, toPublicQuestion(&questions[i], answered[questions[i].ID]))
	}
	return out, nil
}

// Answer grades an answer server-side. Each question can be answered once
// per session; a correct answer credits its points to the user's score.
func (s *Service) Answer(ctx context.Context, userID, questionID, answer string) (*AnswerResult, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	if _, err := uuid.Parse(questionID); err != nil {
		return nil, ErrQuestionNotFound
	}

	q, err := s.repo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	first, err := s.tracker.MarkAnswered(ctx, userID, q.ID)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrAlreadyAnswered
	}

	correct := q.IsCorrect(answer)
	metrics.ObserveQuizAnswer(correct)

	result := &AnswerResult{
		QuestionID:    q.ID,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
	}
	if !correct {
		return result, nil
	}

	u, err := s.scorer.AddScore(ctx, userID, int64(q.Points))
	if err != nil {
		if unmarkErr := s.tracker.Unmark(ctx, userID, q.ID); unmarkErr != nil {
			return nil, errors.Join(err, unmarkErr)
		}
		return nil, err
	}
	result.PointsAwarded = q.Points
	result.TotalAmount = u.TotalAmount

	return result, nil
}

func (s *Service) ResetSession(ctx context.Context, userID string) error {
	if userID == "" {
		return core.ErrUnauthorized
	}
	return s.tracker.Reset(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]Question, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req *QuestionRequest) (*Question, error) {
	q := &Question{}
	req.apply(q)

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Update(ctx context.Context, id string, req *QuestionRequest) (*Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrQuestionNotFound
	}

	q := &Question{ID: id}
	req.apply(q)

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrQuestionNotFound
	}
	return s.repo.Delete(ctx, id)
}
