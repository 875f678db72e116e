// AngelaMos | 2026
// captcha.go

package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vipinpawar/jeopardy-app/internal/config"
	"github.com/vipinpawar/jeopardy-app/internal/core"
)

var ErrVerificationFailed = fmt.Errorf("captcha verification failed: %w", core.ErrInvalidInput)

type verifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verifier checks reCAPTCHA tokens against Google's siteverify endpoint.
// A disabled verifier accepts every token.
type Verifier struct {
	httpClient *http.Client
	cfg        config.CaptchaConfig
}

func NewVerifier(cfg config.CaptchaConfig) *Verifier {
	return &Verifier{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

func (v *Verifier) Enabled() bool {
	return v.cfg.Enabled
}

func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.cfg.Enabled {
		return nil
	}

	if strings.TrimSpace(token) == "" {
		return ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", v.cfg.SecretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.cfg.VerifyURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verify captcha: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verify captcha: unexpected status %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode captcha response: %w", err)
	}

	if !out.Success {
		return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(out.ErrorCodes, ","))
	}

	return nil
}

func IsVerificationFailure(err error) bool {
	return errors.Is(err, ErrVerificationFailed)
}
