package livechat

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/livechat/httpclient"
	"github.com/kbukum/livechat/version"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.livechatinc.com"
	defaultTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// AccessToken is an OAuth token sent as a bearer credential.
	AccessToken string `yaml:"access_token" mapstructure:"access_token"`
	// PersonalAccessToken and AccountID are sent as basic credentials when
	// no AccessToken is set.
	PersonalAccessToken string `yaml:"personal_access_token" mapstructure:"personal_access_token"`
	AccountID           string `yaml:"account_id" mapstructure:"account_id"`

	// Defaults used by the CLI when a flag is not given.
	ClientID       string `yaml:"client_id" mapstructure:"client_id"`
	LicenseID      string `yaml:"license_id" mapstructure:"license_id"`
	OrganizationID string `yaml:"organization_id" mapstructure:"organization_id"`
	RedirectURI    string `yaml:"redirect_uri" mapstructure:"redirect_uri"`

	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in the base URL and timeout.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("livechat.base_url must be an http(s) URL (got: %q)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("livechat.timeout must be positive")
	}
	if c.PersonalAccessToken != "" && c.AccountID == "" {
		return fmt.Errorf("livechat.account_id is required with a personal access token")
	}
	return nil
}

// Auth returns the credentials the configuration describes, or nil.
func (c *Config) Auth() *httpclient.AuthConfig {
	switch {
	case c.AccessToken != "":
		return httpclient.BearerAuth(c.AccessToken)
	case c.PersonalAccessToken != "":
		return httpclient.PersonalAccessToken(c.AccountID, c.PersonalAccessToken)
	default:
		return nil
	}
}

func (c *Config) httpConfig() httpclient.Config {
	return httpclient.Config{
		Name:      "livechat",
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		UserAgent: version.UserAgent(),
		Headers:   c.Headers,
		Auth:      c.Auth(),
	}
}
