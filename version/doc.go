// Package version reports the build version of livechat binaries.
//
// Release builds set it with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/livechat/version.Version=1.2.0" ./cmd/livechat
//
// Other builds fall back to the VCS stamp the Go toolchain embeds.
package version
