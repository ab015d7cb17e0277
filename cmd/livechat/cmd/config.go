package cmd

import (
	"fmt"

	"github.com/kbukum/livechat/config"
	"github.com/kbukum/livechat/livechat"
	"github.com/kbukum/livechat/observability"
	"github.com/kbukum/livechat/twin"
)

// serviceName selects cmd/livechat/config.yml, .env.livechat and the
// LIVECHAT_ env prefix.
const serviceName = "livechat"

// AppConfig is the full CLI configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	LiveChat      livechat.Config      `yaml:"livechat" mapstructure:"livechat"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Twin          twin.Config          `yaml:"twin" mapstructure:"twin"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	c.LiveChat.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Twin.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.LiveChat.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	if err := c.Twin.Validate(); err != nil {
		return fmt.Errorf("twin: %w", err)
	}
	return nil
}
