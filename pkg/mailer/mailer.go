// Package mailer sends transactional email through an HTTP email API.
package mailer

import (
	"context"
	"fmt"
	"hotel-booking/config"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/ratelimit"

	"github.com/go-resty/resty/v2"
)

type Email struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type apiMailer struct {
	cfg     config.Mail
	log     *logger.Logger
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// New returns an API-backed mailer, or a log-only one when no API URL is
// configured.
func New(cfg config.Mail, log *logger.Logger) Mailer {
	if cfg.APIURL == "" {
		return &logMailer{log: log, from: cfg.From}
	}
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &apiMailer{cfg: cfg, log: log, client: client, limiter: ratelimit.PerMinute(cfg.RatePerMinute)}
}

func (m *apiMailer) Send(ctx context.Context, email Email) error {
	if email.From == "" {
		email.From = m.cfg.From
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limit wait: %w", err)
	}
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(email).
		Post("")
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}
	if resp.IsError() {
		return fmt.Errorf("email API responded %d: %s", resp.StatusCode(), resp.String())
	}
	m.log.DebugContext(ctx, "Email sent",
		logger.StringField("to", email.To),
		logger.StringField("subject", email.Subject),
	)
	return nil
}

type logMailer struct {
	log  *logger.Logger
	from string
}

func (m *logMailer) Send(ctx context.Context, email Email) error {
	m.log.InfoContext(ctx, "Email delivery disabled, logging instead",
		logger.StringField("to", email.To),
		logger.StringField("subject", email.Subject),
	)
	return nil
}
