// AngelaMos | 2026
// codec.go

package notify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/mailer"
)

func decodeNotice(data []byte) (*Notice, error) {
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode notice: %w", err)
	}
	if n.UserID == "" || len(n.Downloads) == 0 {
		return nil, errors.New("decode notice: missing user or downloads")
	}
	return &n, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, core.ErrNotFound) || errors.Is(err, mailer.ErrNotConfigured)
}
