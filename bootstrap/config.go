package bootstrap

import "github.com/kbukum/livechat/config"

// Config is satisfied by any pointer to a struct embedding
// config.ServiceConfig that also defines its own ApplyDefaults and Validate.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
