package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/estately/backend/internal/models"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, resp models.APIResponse) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func newTestClient(url string) *Client {
	c := New(url)
	c.Backoff = 0
	return c
}

func TestListProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties" {
			t.Errorf("path = %q, want /api/properties", r.URL.Path)
		}
		writeEnvelope(t, w, http.StatusOK, models.NewSuccessResponse([]*models.Property{
			{ID: "p1", Title: "Sea View Villa", Price: 9000000},
		}))
	}))
	defer srv.Close()

	props, err := newTestClient(srv.URL).ListProperties(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("got %d props, want 1", len(props))
	}
	if props[0].Title != "Sea View Villa" {
		t.Errorf("title = %q", props[0].Title)
	}
}

func TestGetProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/p7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeEnvelope(t, w, http.StatusOK, models.NewSuccessResponse(&models.Property{ID: "p7", Category: "plot"}))
	}))
	defer srv.Close()

	p, err := newTestClient(srv.URL).GetProperty(context.Background(), "p7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != "p7" || p.Category != "plot" {
		t.Errorf("got %+v", p)
	}
}

func TestListPropertiesRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeEnvelope(t, w, http.StatusServiceUnavailable, models.NewErrorResponse("warming up"))
			return
		}
		writeEnvelope(t, w, http.StatusOK, models.NewSuccessResponse([]*models.Property{{ID: "p1"}}))
	}))
	defer srv.Close()

	props, err := newTestClient(srv.URL).ListProperties(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 1 {
		t.Errorf("got %d props, want 1", len(props))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestListPropertiesGivesUpAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(t, w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list properties"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListProperties(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if serr.StatusCode != http.StatusInternalServerError || serr.Message != "Failed to list properties" {
		t.Errorf("got %+v", serr)
	}
	if got := calls.Load(); got != DefaultAttempts {
		t.Errorf("calls = %d, want %d", got, DefaultAttempts)
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, models.NewErrorResponse("Property not found"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetProperty(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNetworkErrorIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(url)
	c.Attempts = 2
	if _, err := c.ListProperties(context.Background()); err == nil {
		t.Fatal("expected error from closed server")
	}
}

func TestRetry(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		attempts  int
		failFirst int
		wantCalls int
		wantErr   bool
	}{
		{"first try", 3, 0, 1, false},
		{"second try", 3, 1, 2, false},
		{"exhausted", 3, 5, 3, true},
		{"zero attempts runs once", 0, 5, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, 0, func() error {
				calls++
				if calls <= tt.failFirst {
					return boom
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, boom) {
				t.Errorf("err = %v, want wrapping boom", err)
			}
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 3, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("unavailable")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
