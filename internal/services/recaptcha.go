package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrRecaptchaMissingToken = errors.New("recaptcha token is required")

// RecaptchaError reports a token Google refused.
type RecaptchaError struct {
	Codes []string
}

func (e *RecaptchaError) Error() string {
	if len(e.Codes) == 0 {
		return "recaptcha verification failed"
	}
	return "recaptcha verification failed: " + strings.Join(e.Codes, ",")
}

// RecaptchaVerifier checks reCAPTCHA v2 tokens submitted with enquiries.
type RecaptchaVerifier struct {
	Secret     string
	Endpoint   string
	HTTPClient *http.Client
}

type recaptchaVerifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func NewRecaptchaVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		Secret:     strings.TrimSpace(secret),
		Endpoint:   "https://www.google.com/recaptcha/api/siteverify",
		HTTPClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Verify returns nil when the token is accepted, *RecaptchaError when it is
// refused, and any other error when the check itself could not run.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return ErrRecaptchaMissingToken
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", tok)
	if ip := strings.TrimSpace(remoteIP); ip != "" {
		form.Set("remoteip", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("recaptcha verify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recaptcha verify http %d", resp.StatusCode)
	}

	var out recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("recaptcha verify: %w", err)
	}
	if !out.Success {
		return &RecaptchaError{Codes: out.ErrorCodes}
	}
	return nil
}
