package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estately/backend/internal/models"
)

func TestRecaptchaVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.Form.Get("secret") != "s3cret" {
			t.Errorf("secret = %q", r.Form.Get("secret"))
		}
		switch r.Form.Get("response") {
		case "good":
			w.Write([]byte(`{"success":true}`))
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
		}
	}))
	defer srv.Close()

	v := NewRecaptchaVerifier("s3cret")
	v.Endpoint = srv.URL
	ctx := context.Background()

	if err := v.Verify(ctx, "good", "10.0.0.1"); err != nil {
		t.Errorf("good token: %v", err)
	}

	var rerr *RecaptchaError
	if err := v.Verify(ctx, "bad", ""); !errors.As(err, &rerr) || rerr.Codes[0] != "invalid-input-response" {
		t.Errorf("bad token: %v", err)
	}
	if err := v.Verify(ctx, "  ", ""); !errors.Is(err, ErrRecaptchaMissingToken) {
		t.Errorf("missing token: %v", err)
	}
	if err := v.Verify(ctx, "broken", ""); err == nil || errors.As(err, &rerr) {
		t.Errorf("server failure: %v", err)
	}
}

func TestSendGridNotifyLead(t *testing.T) {
	var got sendGridMailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer("key", "noreply@example.com", "sales@example.com")
	m.Endpoint = srv.URL

	lead := &models.Lead{ID: "l1", Name: "Asha", Email: "asha@example.com", Phone: "98480", Message: "Call me"}
	prop := &models.Property{ID: "p1", Title: "Sea View Villa", Category: "house"}
	if err := m.NotifyLead(context.Background(), lead, prop); err != nil {
		t.Fatalf("NotifyLead: %v", err)
	}

	if got.Personalizations[0].Subject != "New enquiry: Sea View Villa" {
		t.Errorf("subject = %q", got.Personalizations[0].Subject)
	}
	if got.ReplyTo == nil || got.ReplyTo.Email != "asha@example.com" {
		t.Errorf("reply-to = %+v", got.ReplyTo)
	}
	if body := got.Content[0].Value; !strings.Contains(body, "Phone: 98480") || !strings.Contains(body, "Call me") {
		t.Errorf("body = %q", body)
	}
}

func TestSendGridErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	lead := &models.Lead{ID: "l1", Name: "Asha", Email: "asha@example.com"}

	m := NewSendGridMailer("key", "noreply@example.com", "sales@example.com")
	m.Endpoint = srv.URL
	if err := m.NotifyLead(context.Background(), lead, nil); err == nil {
		t.Error("expected error for 401")
	}

	unconfigured := NewSendGridMailer("", "", "")
	if err := unconfigured.NotifyLead(context.Background(), lead, nil); err == nil {
		t.Error("expected error when not configured")
	}
}
