// Package logger is the zerolog-backed structured logger shared by the
// livechat client, the twin server and the CLI.
//
//	logging:
//	  level: "info"
//	  format: "json"   # json, console or pretty
//
// Components take a *Logger and tag it:
//
//	log := logger.WithComponent("httpclient")
//	log.Debug("request completed", logger.HTTPFields("POST", path, 200, d))
package logger
