// Package client provides an HTTP client for the listings API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/estately/backend/internal/models"
)

// Retry defaults for listing fetches.
const (
	DefaultAttempts = 3
	DefaultBackoff  = time.Second
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to the listings API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Attempts and Backoff control retries of read requests. Every failure
	// is retried after a fixed Backoff, without jitter.
	Attempts int
	Backoff  time.Duration
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		Attempts:   DefaultAttempts,
		Backoff:    DefaultBackoff,
	}
}

// ListProperties returns every property, newest first.
func (c *Client) ListProperties(ctx context.Context) ([]*models.Property, error) {
	var props []*models.Property
	if err := c.getWithRetry(ctx, "/api/properties", &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single property.
func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := c.getWithRetry(ctx, "/api/properties/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) getWithRetry(ctx context.Context, path string, result interface{}) error {
	return Retry(ctx, c.Attempts, c.Backoff, func() error {
		return c.get(ctx, path, result)
	})
}

// Retry calls fn up to attempts times, sleeping backoff between failures.
// It stops early when ctx is done and returns the last error.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		slog.Debug("retrying request", "attempt", i, "err", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}

// get performs a GET request and decodes the envelope's data into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}
	if !envelope.Success {
		return fmt.Errorf("request failed: %s", envelope.Error)
	}
	if result == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}
