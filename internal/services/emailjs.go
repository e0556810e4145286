package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSMailer posts to the EmailJS REST API using a template whose
// parameters match the consultation form.
type EmailJSMailer struct {
	httpClient *http.Client
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
}

func NewEmailJSMailer(serviceID, templateID, publicKey, privateKey string) *EmailJSMailer {
	return &EmailJSMailer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   defaultEmailJSURL,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		privateKey: privateKey,
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJSMailer) Send(ctx context.Context, msg EmailMessage) error {
	payload := emailJSRequest{
		ServiceID:   m.serviceID,
		TemplateID:  m.templateID,
		UserID:      m.publicKey,
		AccessToken: m.privateKey,
		TemplateParams: map[string]string{
			"to_email":      msg.To,
			"email_subject": msg.Subject,
			"email_body":    msg.Body,
			"from_name":     msg.FromName,
			"reply_to":      msg.ReplyTo,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode emailjs payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
