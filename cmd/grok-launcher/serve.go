package main

import (
	"fmt"
	"os"

	"github.com/germanamz/grok-launcher/pkg/hostlink"
	"github.com/germanamz/grok-launcher/pkg/modeladapter/usage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var wsURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to the launcher host and answer its queries",
		Long: `Connects to the launcher host over a WebSocket and answers query events
until the host disconnects or the process is interrupted.

The host URL comes from --ws-url or the ` + hostlink.EnvURL + ` environment variable.
Preferences from the preferences file and GROK_* variables are used until
the host sends its own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url := wsURL
			if url == "" {
				url = os.Getenv(hostlink.EnvURL)
			}
			if url == "" {
				return fmt.Errorf("no host URL: pass --ws-url or set %s", hostlink.EnvURL)
			}

			prefs, err := a.preferences()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			h := a.handler()
			h.Usage = &usage.Tracker{}
			defer logUsage(a.logger, h.Usage)

			link, err := hostlink.Dial(ctx, url, h, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := link.Close(); err != nil {
					a.logger.Debug("closing host link", zap.Error(err))
				}
			}()

			link.SetPreferences(prefs)
			a.logger.Info("connected to host", zap.String("url", url))

			return link.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&wsURL, "ws-url", "", "launcher host WebSocket URL (default: $"+hostlink.EnvURL+")")

	return cmd
}

func logUsage(log *zap.Logger, tr *usage.Tracker) {
	if tr.Requests() == 0 {
		return
	}

	total := tr.Total()
	log.Info("session usage",
		zap.Int("requests", tr.Requests()),
		zap.Int("prompt_tokens", total.PromptTokens),
		zap.Int("completion_tokens", total.CompletionTokens),
	)
	for model, tc := range tr.ByModel() {
		log.Debug("model usage", zap.String("model", model), zap.Int("tokens", tc.Total()))
	}
}
