package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Transport error policies for failed send operations.
const (
	TransportErrorNotify = "notify"
	TransportErrorIgnore = "ignore"
)

// Config holds all application configuration values
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	InviteAPIURL     string        `env:"INVITE_API_URL,required,notEmpty"`
	InviteAPIPath    string        `env:"INVITE_API_PATH" envDefault:"/invite/doctor"`
	InviteAPIToken   string        `env:"INVITE_API_TOKEN"`
	InviteAPITimeout time.Duration `env:"INVITE_API_TIMEOUT" envDefault:"30s"`

	TransportErrorPolicy string        `env:"TRANSPORT_ERROR_POLICY" envDefault:"notify"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions          int           `env:"MAX_SESSIONS" envDefault:"10000"`
	SecureCookies        bool          `env:"SECURE_COOKIES" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	NATSURL     string `env:"NATS_URL"`
	NATSSubject string `env:"NATS_SUBJECT" envDefault:"invites.doctors.outcome"`
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.TransportErrorPolicy = strings.ToLower(strings.TrimSpace(c.TransportErrorPolicy))
	switch c.TransportErrorPolicy {
	case TransportErrorNotify, TransportErrorIgnore:
	default:
		return fmt.Errorf("unknown TRANSPORT_ERROR_POLICY %q", c.TransportErrorPolicy)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("MAX_SESSIONS must not be negative")
	}
	if c.InviteAPITimeout < 0 {
		return fmt.Errorf("INVITE_API_TIMEOUT must not be negative")
	}
	return nil
}
