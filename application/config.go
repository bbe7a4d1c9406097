package application

import (
	"fmt"

	"github.com/rapidrescue/rescuedge/alert"
	"github.com/rapidrescue/rescuedge/auth"
	"github.com/rapidrescue/rescuedge/config"
	"github.com/rapidrescue/rescuedge/database"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/redis"
	"github.com/rapidrescue/rescuedge/server"
)

// Config is the full RescuEdge configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Database  database.Config      `yaml:"database" mapstructure:"database"`
	Redis     redis.Config         `yaml:"redis" mapstructure:"redis"`
	Tracing   observability.Config `yaml:"tracing" mapstructure:"tracing"`
	Auth      auth.Config          `yaml:"auth" mapstructure:"auth"`
	Hospitals HospitalsConfig      `yaml:"hospitals" mapstructure:"hospitals"`
	Twilio    alert.Config         `yaml:"twilio" mapstructure:"twilio"`
}

// HospitalsConfig controls the hospital registry.
type HospitalsConfig struct {
	// Seed loads the demo hospitals even in production.
	Seed bool `yaml:"seed" mapstructure:"seed"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Twilio.ApplyDefaults()
}

// Validate checks every section the service itself uses. Twilio
// credentials are only checked when an alert is sent.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	for _, v := range []interface{ Validate() error }{
		&c.Server, &c.Database, &c.Redis, &c.Tracing, &c.Auth,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SeedHospitals reports whether the demo hospitals are loaded at startup.
func (c *Config) SeedHospitals() bool {
	return !c.IsProduction() || c.Hospitals.Seed
}

// Load reads configuration for root: config.yml, then .env and the
// environment, then --key=value arguments.
func Load(root Root, args []string) (*Config, error) {
	opts := []config.LoaderOption{config.WithArgs(args)}
	if root.ConfigName != "" {
		opts = append(opts, config.WithConfigFile(root.ConfigName))
	}
	if root.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(root.EnvFile))
	}

	cfg := &Config{}
	if err := config.LoadConfig(root.Name, cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = root.Name
	}
	return cfg, nil
}
