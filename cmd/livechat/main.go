// Command livechat drives the LiveChat chat-service API from the shell and
// serves a local twin of it.
package main

import (
	"context"
	"os"

	"github.com/kbukum/livechat/cmd/livechat/cmd"
)

func main() {
	if err := cmd.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
