package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rapidrescue/rescuedge/resilience"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are applied to every request; request headers win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth is the default authentication. Requests can override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Retry configures retries. Nil sends each request once.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// Transport replaces the default transport, mainly for tests.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("httpclient: invalid base_url %q", c.BaseURL)
		}
	}
	return nil
}

// DefaultRetryConfig retries connection failures, timeouts, 429 and 5xx.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
