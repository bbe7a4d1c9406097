package auth

import (
	"fmt"
	"time"
)

// Config configures bearer-token protection. Auth is enabled when
// JWTSecret is set.
type Config struct {
	JWTSecret string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	Issuer    string        `yaml:"issuer" mapstructure:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// Enabled reports whether write endpoints require a token.
func (c *Config) Enabled() bool {
	return c.JWTSecret != ""
}

// ApplyDefaults sets the token lifetime.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "rescuedge"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 12 * time.Hour
	}
}

// Validate rejects secrets too short for HS256.
func (c *Config) Validate() error {
	if c.Enabled() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes (got: %d)", len(c.JWTSecret))
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must be non-negative (got: %s)", c.TokenTTL)
	}
	return nil
}
