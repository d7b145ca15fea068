package mailrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Zachkp/portfolio/internal/config"
)

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	cfg    config.EmailJS
	client *http.Client
}

// NewEmailJS returns an EmailJS relay. A nil client uses http.DefaultClient.
func NewEmailJS(cfg config.EmailJS, client *http.Client) *EmailJS {
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{cfg: cfg, client: client}
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams templateParams `json:"template_params"`
}

// templateParams are the variable names the email template expects.
type templateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Message   string `json:"message"`
}

func (e *EmailJS) Name() string { return config.RelayEmailJS }

// Send posts msg to the relay. Only HTTP 200 counts as delivered.
func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	if e.cfg.ServiceID == "" || e.cfg.TemplateID == "" || e.cfg.PublicKey == "" {
		return fmt.Errorf("emailjs: %w", ErrNotConfigured)
	}

	payload, err := json.Marshal(emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: templateParams{
			FromName:  msg.Name,
			FromEmail: msg.Email,
			Message:   msg.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: %w: status %d: %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
