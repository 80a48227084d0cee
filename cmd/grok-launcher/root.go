package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/germanamz/grok-launcher/pkg/launcher"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envPrefix marks environment variables that override preferences.
const envPrefix = "GROK_"

// app carries the global flags and the logger shared by all commands.
type app struct {
	verbose   bool
	envFile   string
	prefsPath string
	baseURL   string
	sets      []string

	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "grok-launcher",
		Short: "Ask Grok from your application launcher",
		Long: `grok-launcher is a launcher extension that forwards a typed prompt to
xAI's Grok chat completions API and returns each answer as a result item
that copies its text to the clipboard.

Run "grok-launcher serve" from the launcher host, or "grok-launcher query"
to try a prompt from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(a.envFile); err != nil {
				return err
			}
			return a.initLogger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.envFile, "env", ".env", "path to .env file (ignored if missing)")
	pf.StringVar(&a.prefsPath, "prefs", "", "path to a YAML preferences file (default: "+defaultPrefsPath()+")")
	pf.StringVar(&a.baseURL, "base-url", "", "override the xAI API base URL")
	pf.StringArrayVar(&a.sets, "set", nil, "override a preference as key=value (repeatable)")

	root.AddCommand(
		newServeCmd(a),
		newQueryCmd(a),
		newPrefsCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) initLogger() error {
	if a.logger != nil {
		return nil
	}

	config := zap.NewProductionConfig()
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// preferences resolves the preferences for a command: the preferences file,
// then GROK_* environment variables, then --set flags.
func (a *app) preferences() (launcher.Preferences, error) {
	prefs := launcher.Preferences{}

	path := a.prefsPath
	explicit := path != ""
	if !explicit {
		path = defaultPrefsPath()
	}

	filePrefs, err := launcher.LoadPreferencesFile(path)
	switch {
	case err == nil:
		prefs = filePrefs
	case !explicit && errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	prefs = prefs.Merge(launcher.PreferencesFromEnv(envPrefix))

	sets, err := parseSets(a.sets)
	if err != nil {
		return nil, err
	}

	return prefs.Merge(sets), nil
}

func parseSets(sets []string) (launcher.Preferences, error) {
	out := launcher.Preferences{}
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		out[key] = value
	}
	return out, nil
}

// configDir returns the directory holding the preferences file.
// Resolution order: $LAUNCHER_GROK_CONFIG_DIR > $XDG_CONFIG_HOME/grok-launcher > ~/.config/grok-launcher.
func configDir() string {
	if dir := os.Getenv("LAUNCHER_GROK_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "grok-launcher")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "grok-launcher")
	}
	return filepath.Join(home, ".config", "grok-launcher")
}

func defaultPrefsPath() string {
	return filepath.Join(configDir(), "preferences.yaml")
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
