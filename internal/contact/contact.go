// AngelaMos | 2026
// contact.go

package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
)

var ErrUnavailable = errors.New("contact mail unavailable")

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
	Enabled() bool
	AdminEmail() string
	UserTemplateID() int64
	AdminTemplateID() int64
}

type Request struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type Service struct {
	mail Mailer
}

func NewService(mail Mailer) *Service {
	return &Service{mail: mail}
}

// Submit sends the acknowledgement to the sender and the notice to the
// admin. Both use Brevo templates.
func (s *Service) Submit(ctx context.Context, req *Request) error {
	if !s.mail.Enabled() || s.mail.AdminEmail() == "" {
		return ErrUnavailable
	}

	name := strings.TrimSpace(req.Name)
	message := strings.TrimSpace(req.Message)

	ack := mailer.Templated(req.Email, s.mail.UserTemplateID(), map[string]any{
		"NAME":    name,
		"MESSAGE": message,
	})
	err := s.mail.Send(ctx, ack)
	metrics.ObserveNotification("contact", err)
	if err != nil {
		return fmt.Errorf("send contact acknowledgement: %w", err)
	}

	notice := mailer.Templated(s.mail.AdminEmail(), s.mail.AdminTemplateID(), map[string]any{
		"NAME":    name,
		"EMAIL":   req.Email,
		"MESSAGE": message,
	})
	err = s.mail.Send(ctx, notice)
	metrics.ObserveNotification("contact", err)
	if err != nil {
		return fmt.Errorf("send contact notice: %w", err)
	}

	return nil
}
