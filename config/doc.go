// Package config loads layered configuration for the livechat binaries.
//
// Values come from, in increasing priority: a config.yml found in the
// standard locations (or passed explicitly), a .env file, and process
// environment variables carrying the service prefix:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    LiveChat livechat.Config `yaml:"livechat" mapstructure:"livechat"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("livechat", &cfg)
//
// LIVECHAT_LIVECHAT_ACCESS_TOKEN then overrides livechat.access_token.
package config
