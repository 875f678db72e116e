// AngelaMos | 2026
// mailer.go

package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	brevo "github.com/getbrevo/brevo-go/lib"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

var ErrNotConfigured = errors.New("mailer not configured")

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Message is a transactional e-mail. Either HTMLContent with Subject, or
// TemplateID with Params, must be set.
type Message struct {
	To          []Recipient    `json:"to"`
	Subject     string         `json:"subject,omitempty"`
	HTMLContent string         `json:"htmlContent,omitempty"`
	TemplateID  int64          `json:"templateId,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return errors.New("message has no recipients")
	}
	if m.TemplateID == 0 && (m.Subject == "" || m.HTMLContent == "") {
		return errors.New("message needs a template or subject and content")
	}
	return nil
}

// Client sends mail through the Brevo transactional API.
type Client struct {
	api    *brevo.APIClient
	cfg    config.MailConfig
	logger *slog.Logger
}

func New(cfg config.MailConfig, logger *slog.Logger) *Client {
	bc := brevo.NewConfiguration()
	if cfg.BaseURL != "" {
		bc.BasePath = strings.TrimRight(cfg.BaseURL, "/")
	}
	bc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	bc.AddDefaultHeader("api-key", cfg.APIKey)

	return &Client{
		api:    brevo.NewAPIClient(bc),
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.APIKey != "" && c.cfg.SenderEmail != ""
}

func (c *Client) AdminEmail() string {
	return c.cfg.AdminEmail
}

func (c *Client) UserTemplateID() int64 {
	return c.cfg.UserTemplateID
}

func (c *Client) AdminTemplateID() int64 {
	return c.cfg.AdminTemplateID
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if !c.Enabled() {
		c.logger.Warn("mail delivery skipped",
			"reason", "BREVO_API_KEY or sender not set",
			"subject", msg.Subject,
			"template_id", msg.TemplateID,
		)
		return fmt.Errorf("send mail: %w", ErrNotConfigured)
	}

	to := make([]brevo.SendSmtpEmailTo, 0, len(msg.To))
	for _, r := range msg.To {
		to = append(to, brevo.SendSmtpEmailTo{Email: r.Email, Name: r.Name})
	}

	var params *interface{}
	if msg.Params != nil {
		var p interface{} = msg.Params
		params = &p
	}

	_, _, err := c.api.TransactionalEmailsApi.SendTransacEmail(ctx, brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Email: c.cfg.SenderEmail,
			Name:  c.cfg.SenderName,
		},
		To:          to,
		Subject:     msg.Subject,
		HtmlContent: msg.HTMLContent,
		TemplateId:  msg.TemplateID,
		Params:      params,
	})
	if err != nil {
		var apiErr brevo.GenericSwaggerError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("send mail: brevo returned %s: %s",
				err.Error(), strings.TrimSpace(string(apiErr.Body())))
		}
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
