package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/arcvista/backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer dispatches contact and enquiry emails through the Resend API.
//
// Required configuration:
//   - RESEND_API_KEY: the Resend API key
//   - RESEND_FROM_EMAIL: the sender address (e.g. "ArcVista <noreply@arcvista.example>")
//   - CONTACT_RECIPIENT: where contact-form mail ends up
type Mailer struct {
	client    *http.Client
	logger    zerolog.Logger
	apiKey    string
	from      string
	recipient string
}

// NewMailerFromConfig builds a Mailer from the environment config map. An
// error means the required keys are absent and contact endpoints cannot work.
func NewMailerFromConfig(c map[string]string) (*Mailer, error) {
	apiKey := config.GetString(c, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	from := config.GetString(c, "RESEND_FROM_EMAIL", "")
	if from == "" {
		return nil, fmt.Errorf("RESEND_FROM_EMAIL environment variable is required")
	}

	recipient := config.GetString(c, "CONTACT_RECIPIENT", "")
	if recipient == "" {
		return nil, fmt.Errorf("CONTACT_RECIPIENT environment variable is required")
	}

	return &Mailer{
		client:    &http.Client{},
		logger:    log.With().Str("component", "mailer").Logger(),
		apiKey:    apiKey,
		from:      from,
		recipient: recipient,
	}, nil
}

// Send delivers one HTML email to the configured recipient, with replies
// routed back to the enquiring visitor.
func (m *Mailer) Send(ctx context.Context, subject, html, replyTo string) error {
	payload := ResendEmailRequest{
		From:    m.from,
		To:      []string{m.recipient},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    html,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		m.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
