// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Relay names accepted by MAIL_RELAY.
const (
	RelayEmailJS = "emailjs"
	RelaySMTP    = "smtp"
)

// Config is the full site configuration.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AdminAddr      string        `env:"ADMIN_ADDR" envDefault:"127.0.0.1:9090"`
	AnalyticsDB    string        `env:"ANALYTICS_DB"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	SplashDuration time.Duration `env:"SPLASH_DURATION" envDefault:"1500ms"`
	WhatsAppNumber string        `env:"WHATSAPP_NUMBER" envDefault:"5522999048103"`
	OTelEndpoint   string        `env:"OTEL_EXPORTER_ENDPOINT"`

	Mail Mail
}

// Mail configures the contact form relay.
type Mail struct {
	Relay   string        `env:"MAIL_RELAY" envDefault:"emailjs"`
	Timeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"15s"`
	// To is the inbox receiving contact messages over SMTP.
	To string `env:"TO_EMAIL"`

	EmailJS EmailJS `envPrefix:"EMAILJS_"`
	SMTP    SMTP    `envPrefix:"SMTP_"`
}

// EmailJS holds the mail-relay service identifiers.
type EmailJS struct {
	Endpoint   string `env:"ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	PublicKey  string `env:"PUBLIC_KEY"`
	PrivateKey string `env:"PRIVATE_KEY"`
}

// SMTP holds credentials for direct delivery.
type SMTP struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the site configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	switch cfg.Mail.Relay {
	case RelayEmailJS, RelaySMTP:
	default:
		return Config{}, fmt.Errorf("MAIL_RELAY: unknown relay %q", cfg.Mail.Relay)
	}
	if cfg.SplashDuration < 0 {
		return Config{}, fmt.Errorf("SPLASH_DURATION: must not be negative")
	}
	return cfg, nil
}

// WhatsAppURL is the deep link offered as an alternative contact channel.
func (c Config) WhatsAppURL() string {
	return "https://wa.me/" + c.WhatsAppNumber
}
