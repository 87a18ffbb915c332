package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventra-live/eventra-admin-api/pkg/config"
	"github.com/eventra-live/eventra-admin-api/pkg/console/client"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "admin-console",
		Short:         "Terminal console for the Eventra admin API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL including the /api/v1 prefix (default from CONSOLE_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "access token (default from CONSOLE_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default from CONSOLE_REQUEST_TIMEOUT)")

	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newRemoveCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newRateCmd(opts))
	return cmd
}

// consoleConfig resolves defaults from the environment and applies flag
// overrides on top.
func (o *rootOptions) consoleConfig() (config.ConsoleConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.ConsoleConfig{}, err
	}
	console := cfg.Console
	if o.baseURL != "" {
		console.BaseURL = o.baseURL
	}
	if o.timeout > 0 {
		console.RequestTimeout = o.timeout
	}
	return console, nil
}

func (o *rootOptions) apiClient() (*client.Client, config.ConsoleConfig, error) {
	console, err := o.consoleConfig()
	if err != nil {
		return nil, config.ConsoleConfig{}, err
	}
	token := o.token
	if token == "" {
		token = os.Getenv("CONSOLE_TOKEN")
	}
	api := client.New(console.BaseURL,
		client.WithToken(token),
		client.WithTimeout(console.RequestTimeout),
	)
	return api, console, nil
}
