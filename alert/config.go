package alert

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/rapidrescue/rescuedge/errors"
)

const defaultBaseURL = "https://api.twilio.com"

// Config holds the Twilio account used for outbound SMS.
type Config struct {
	AccountSID string `yaml:"account_sid" mapstructure:"account_sid"`
	AuthToken  string `yaml:"auth_token" mapstructure:"auth_token"`
	// FromNumber is the Twilio number messages are sent from (E.164).
	FromNumber string `yaml:"phone_number" mapstructure:"phone_number"`

	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Timeout     string `yaml:"timeout" mapstructure:"timeout"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
}

// Configured reports whether all credentials are present.
func (c *Config) Configured() bool {
	return len(c.missing()) == 0
}

func (c *Config) missing() []string {
	var fields []string
	for _, f := range []struct{ name, value string }{
		{"account_sid", c.AccountSID},
		{"auth_token", c.AuthToken},
		{"phone_number", c.FromNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// Validate reports missing credentials as a configuration error.
func (c *Config) Validate() error {
	if missing := c.missing(); len(missing) > 0 {
		return apperrors.Configuration("Missing Twilio credentials").
			WithDetail("fields", missing)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid twilio.timeout %q: %w", c.Timeout, err)
	}
	return nil
}

// TimeoutDuration returns Timeout parsed, or 10s when unparseable.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
