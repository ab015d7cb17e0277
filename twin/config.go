package twin

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds twin server configuration.
type Config struct {
	Addr         string `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// SigningKey signs customer access tokens (HS256).
	SigningKey string        `yaml:"signing_key" mapstructure:"signing_key"`
	TokenTTL   time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	Issuer     string        `yaml:"issuer" mapstructure:"issuer"`

	// OrganizationID is reported in token responses.
	OrganizationID string `yaml:"organization_id" mapstructure:"organization_id"`
	// PageSize is the list page size used when a request sets none.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// Agents maps account ids to bcrypt hashes of their personal access
	// tokens. When empty, agent routes accept any credentials.
	Agents map[string]string `yaml:"agents" mapstructure:"agents"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8081"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.SigningKey == "" {
		c.SigningKey = "livechat-twin-signing-key"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 8 * time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "livechat-twin"
	}
	if c.OrganizationID == "" {
		c.OrganizationID = "twin-organization"
	}
	if c.PageSize == 0 {
		c.PageSize = 25
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("twin.addr must be host:port (got: %q)", c.Addr)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("twin timeouts must be non-negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("twin.max_body_bytes must be non-negative (got: %d)", c.MaxBodyBytes)
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("twin.page_size must be between 1 and 100 (got: %d)", c.PageSize)
	}
	for account, hash := range c.Agents {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return fmt.Errorf("twin.agents.%s is not a bcrypt hash: %w", account, err)
		}
	}
	return nil
}
