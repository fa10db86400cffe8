package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process-wide configuration. It is loaded once at
// startup and never mutated; everything downstream receives it (or a
// slice of it) by injection.
type Config struct {
	Port int `envconfig:"PORT" default:"5000"`

	// Email transport
	EmailService string `envconfig:"EMAIL_SERVICE" default:"gmail"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"noreply@jbslegal.com"`
	AdminEmail   string `envconfig:"ADMIN_EMAIL" default:"yurekhsolutions@gmail.com"`

	GmailUser      string `envconfig:"GMAIL_USER"`
	GmailPassword  string `envconfig:"GMAIL_PASSWORD"`
	SendgridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	SESHost        string `envconfig:"SES_HOST" default:"email-smtp.us-east-1.amazonaws.com"`
	SESUser        string `envconfig:"SES_USER"`
	SESPassword    string `envconfig:"SES_PASSWORD"`
	ZohoHost       string `envconfig:"ZOHO_HOST" default:"smtp.zoho.com"`
	ZohoUser       string `envconfig:"ZOHO_USER"`
	ZohoPassword   string `envconfig:"ZOHO_PASSWORD"`

	// Booking policy toggles; the two backend variants this replaces
	// disagreed on both, so each is independently configurable.
	EnforceFutureDate bool `envconfig:"BOOKING_ENFORCE_FUTURE_DATE" default:"true"`
	CheckSlotConflict bool `envconfig:"BOOKING_CHECK_SLOT_CONFLICT" default:"true"`

	// How long a booking stays in the in-memory store.
	BookingRetention time.Duration `envconfig:"BOOKING_RETENTION" default:"720h"`

	// Rate limiting
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
