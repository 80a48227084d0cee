package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/germanamz/grok-launcher/cmd/grok-launcher/internal/styles"
	"github.com/germanamz/grok-launcher/pkg/extension"
	"github.com/spf13/cobra"
)

func newPrefsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "Print the resolved configuration",
		Long: `Resolves preferences from the preferences file, GROK_* environment
variables and --set flags, validates them and prints the result with the
API key masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}

			cfg, err := extension.LoadConfig(prefs)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), renderConfig(cfg.Redacted()))
			return err
		},
	}
}

func renderConfig(cfg extension.Config) string {
	rows := [][2]string{
		{extension.KeyAPIKey, cfg.APIKey},
		{extension.KeyModel, cfg.Model},
		{extension.KeyMaxTokens, strconv.Itoa(cfg.MaxTokens)},
		{extension.KeyTemperature, formatFloat(cfg.Temperature)},
		{extension.KeyTopP, formatFloat(cfg.TopP)},
		{extension.KeyFrequencyPenalty, formatFloat(cfg.FrequencyPenalty)},
		{extension.KeyPresencePenalty, formatFloat(cfg.PresencePenalty)},
		{extension.KeyLineWrap, strconv.Itoa(cfg.LineWrap)},
		{extension.KeySystemPrompt, cfg.SystemPrompt},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(styles.KeyStyle.Render(r[0]))
		sb.WriteString(styles.DimStyle.Render(": "))
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "grok-launcher", version)
		},
	}
}
