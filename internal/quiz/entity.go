// AngelaMos | 2026
// entity.go

package quiz

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type Question struct {
	ID            string         `db:"id"`
	Category      string         `db:"category"`
	Points        int            `db:"points"`
	Question      string         `db:"question"`
	Options       pq.StringArray `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// IsCorrect compares answer with the stored answer, ignoring surrounding
// whitespace only.
func (q *Question) IsCorrect(answer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectAnswer)
}
