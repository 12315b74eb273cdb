package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/estately/backend/internal/models"
)

// LeadNotifier tells the sales team about a new enquiry. property is nil
// for general enquiries.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *models.Lead, property *models.Property) error
}

type SendGridMailer struct {
	APIKey     string
	FromEmail  string
	ToEmail    string
	Endpoint   string
	HTTPClient *http.Client
}

func NewSendGridMailer(apiKey, fromEmail, toEmail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:     strings.TrimSpace(apiKey),
		FromEmail:  strings.TrimSpace(fromEmail),
		ToEmail:    strings.TrimSpace(toEmail),
		Endpoint:   "https://api.sendgrid.com/v3/mail/send",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To         []sendGridAddress `json:"to"`
	Subject    string            `json:"subject"`
	CustomArgs map[string]string `json:"custom_args,omitempty"`
}

type sendGridMailRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	ReplyTo          *sendGridAddress          `json:"reply_to,omitempty"`
	Content          []sendGridContent         `json:"content"`
}

func (m *SendGridMailer) NotifyLead(ctx context.Context, lead *models.Lead, property *models.Property) error {
	if m.APIKey == "" || m.FromEmail == "" || m.ToEmail == "" {
		return errors.New("sendgrid mailer not configured")
	}

	subject := "New enquiry from " + lead.Name
	about := "General enquiry"
	if property != nil {
		subject = fmt.Sprintf("New enquiry: %s", property.Title)
		about = fmt.Sprintf("%s (%s, %s)", property.Title, property.Category, property.ID)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Lead: %s\n", lead.ID)
	fmt.Fprintf(&body, "About: %s\n", about)
	fmt.Fprintf(&body, "From: %s <%s>\n", lead.Name, lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", lead.Phone)
	}
	fmt.Fprintf(&body, "\n%s\n", lead.Message)

	payload := sendGridMailRequest{
		Personalizations: []sendGridPersonalization{{
			To:         []sendGridAddress{{Email: m.ToEmail}},
			Subject:    subject,
			CustomArgs: map[string]string{"lead_id": lead.ID},
		}},
		From:    sendGridAddress{Email: m.FromEmail, Name: "Estately Enquiries"},
		ReplyTo: &sendGridAddress{Email: lead.Email, Name: lead.Name},
		Content: []sendGridContent{{Type: "text/plain", Value: body.String()}},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 Accepted.
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid mail send http %d", resp.StatusCode)
	}
	return nil
}
