package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/livechat/bootstrap"
	"github.com/kbukum/livechat/config"
	"github.com/kbukum/livechat/livechat"
	"github.com/kbukum/livechat/observability"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configFile string
	envFile    string
	baseURL    string
	token      string
	debug      bool
}

// session is what a command body gets once config, logging, telemetry and
// the API client are set up.
type session struct {
	cfg    *AppConfig
	client *livechat.Client
	out    io.Writer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "livechat",
		Short: "LiveChat chat-service client",
		Long: `livechat calls the LiveChat chat-service API: customer tokens, chats,
events and customers. "livechat twin serve" runs a local twin of the API.

Configuration is read from config.yml (--config, ./cmd/livechat/config.yml,
./config.yml or ~/.config/livechat/config.yml), then .env.livechat or .env,
then LIVECHAT_* environment variables such as LIVECHAT_LIVECHAT_ACCESS_TOKEN.
Flags win over all of them.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "config file (default: search for config.yml)")
	pf.StringVar(&g.envFile, "env-file", "", "env file to load")
	pf.StringVar(&g.baseURL, "base-url", "", "API base URL")
	pf.StringVar(&g.token, "token", "", "access token sent as a bearer credential")
	pf.BoolVar(&g.debug, "debug", false, "debug logging")

	root.AddCommand(
		newTokenCmd(g),
		newChatCmd(g),
		newChatsCmd(g),
		newCustomersCmd(g),
		newTwinCmd(g),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads AppConfig and applies flag overrides.
func (g *globalFlags) loadConfig() (*AppConfig, error) {
	var opts []config.LoaderOption
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		opts = append(opts, config.WithEnvFile(g.envFile))
	}
	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if g.baseURL != "" {
		cfg.LiveChat.BaseURL = g.baseURL
	}
	if g.token != "" {
		cfg.LiveChat.AccessToken = g.token
	}
	if g.debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApp loads config and wires telemetry shutdown into the lifecycle.
func (g *globalFlags) newApp(ctx context.Context) (*bootstrap.App[*AppConfig], error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	shutdown, err := observability.Init(ctx, cfg.Name, cfg.Observability)
	if err != nil {
		return nil, err
	}
	app.OnStop(bootstrap.Hook(shutdown))
	return app, nil
}

// run executes fn as a one-shot task against the configured API.
func (g *globalFlags) run(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := g.newApp(ctx)
	if err != nil {
		return err
	}
	client, err := livechat.New(app.Cfg.LiveChat, livechat.WithLogger(app.Logger))
	if err != nil {
		return err
	}
	s := &session{cfg: app.Cfg, client: client, out: cmd.OutOrStdout()}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return fn(ctx, s)
	})
}

// print writes v as indented JSON.
func (s *session) print(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// orDefault returns flag unless it is empty.
func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
