// AngelaMos | 2026
// dto.go

package leaderboard

type Entry struct {
	Rank        int    `json:"rank"`
	Badge       string `json:"badge"`
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	TotalAmount int64  `json:"totalAmount"`
}

type ScoreRequest struct {
	TotalAmount *int64 `json:"totalAmount" validate:"required"`
}

type ScoreResponse struct {
	ID          string `json:"id"`
	TotalAmount int64  `json:"totalAmount"`
}
