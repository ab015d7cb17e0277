package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/livechat/twin"
	"github.com/kbukum/livechat/version"
)

func newTwinCmd(g *globalFlags) *cobra.Command {
	twinCmd := &cobra.Command{
		Use:   "twin",
		Short: "Local twin of the chat-service API",
	}

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the twin until interrupted",
		Long: `Serve an in-memory twin of the chat-service API. Agent routes accept any
Bearer or Basic credentials unless twin.agents lists account tokens (see
hash-token). Customer routes need a token from POST /customer/token.
/admin/reset and /admin/state manage the stored data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := g.newApp(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				app.Cfg.Twin.Addr = addr
			}
			srv, err := twin.New(app.Cfg.Twin, app.Logger)
			if err != nil {
				return err
			}
			if err := app.RegisterComponent(srv); err != nil {
				return err
			}
			return app.Run(ctx)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default: twin.addr)")

	hash := &cobra.Command{
		Use:   "hash-token TOKEN",
		Short: "Print the bcrypt hash of a personal access token for twin.agents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := twin.HashToken(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), h)
			return err
		},
	}

	twinCmd.AddCommand(serve, hash)
	return twinCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "livechat", version.Get())
			return err
		},
	}
}
