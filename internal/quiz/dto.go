// AngelaMos | 2026
// dto.go

package quiz

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

type QuestionRequest struct {
	Category      string   `json:"category"      validate:"required,max=100"`
	Points        int      `json:"points"        validate:"required,gt=0"`
	Question      string   `json:"question"      validate:"required"`
	Options       []string `json:"options"       validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

func (r *QuestionRequest) apply(q *Question) {
	q.Category = strings.TrimSpace(r.Category)
	q.Points = r.Points
	q.Question = strings.TrimSpace(r.Question)
	q.Options = pq.StringArray(r.Options)
	q.CorrectAnswer = r.CorrectAnswer
}

// validateAnswerInOptions requires the correct answer to be one of the
// offered options.
func validateAnswerInOptions(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(QuestionRequest)
	if !ok || req.CorrectAnswer == "" {
		return
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt) == strings.TrimSpace(req.CorrectAnswer) {
			return
		}
	}
	sl.ReportError(req.CorrectAnswer, "correctAnswer", "CorrectAnswer", "answer_in_options", "")
}

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateAnswerInOptions, QuestionRequest{})
	return v
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type PublicQuestion struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Points   int      `json:"points"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answered bool     `json:"answered"`
}

type QuestionResponse struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	Points        int      `json:"points"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type AnswerResult struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	PointsAwarded int    `json:"pointsAwarded"`
	TotalAmount   int64  `json:"totalAmount,omitempty"`
}

func toPublicQuestion(q *Question, answered bool) PublicQuestion {
	return PublicQuestion{
		ID:       q.ID,
		Category: q.Category,
		Points:   q.Points,
		Question: q.Question,
		Options:  options(q.Options),
		Answered: answered,
	}
}

func toQuestionResponse(q *Question) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		Category:      q.Category,
		Points:        q.Points,
		Question:      q.Question,
		Options:       options(q.Options),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func options(o pq.StringArray) []string {
	if o == nil {
		return []string{}
	}
	return []string(o)
}
