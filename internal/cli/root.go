// Package cli implements the macaccent command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/opencode-ai/macaccent/internal/accent"
	"github.com/opencode-ai/macaccent/internal/config"
	"github.com/opencode-ai/macaccent/internal/db"
	"github.com/opencode-ai/macaccent/internal/logging"
	"github.com/opencode-ai/macaccent/internal/prefs"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool
	dryRun     bool
	noColor    bool

	appConfig *config.Config

	// newExecutor builds the executor used for live (non dry-run) commands.
	newExecutor = func() prefs.Executor { return prefs.LocalExecutor{} }
)

var rootCmd = &cobra.Command{
	Use:   "macaccent",
	Short: "Match and set the macOS accent and highlight colors",
	Long: `macaccent reads and writes the macOS accent and highlight color preferences.
It can pick the system color closest to a set of hex colors, such as the
scheme pywal generated from your wallpaper, and apply it to both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Logging.Format = logFormat
		}
		logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print defaults commands instead of running them")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color swatches")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func configFileInUse() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// app bundles what a command needs to talk to the preference store.
type app struct {
	service *accent.Service
	closeFn func() error
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// openApp wires the preference store and service. Commands that change
// preferences pass record so applies land in the history database; dry runs
// echo commands to errOut and never record.
func openApp(ctx context.Context, errOut io.Writer, record bool) *app {
	cfg := GetConfig()

	var exec prefs.Executor
	if dryRun {
		exec = &prefs.DryRunExecutor{Out: errOut}
	} else {
		exec = newExecutor()
	}

	store := prefs.NewStore(exec, prefs.Options{
		Binary:  cfg.Defaults.Binary,
		Domain:  cfg.Defaults.Domain,
		Timeout: cfg.Defaults.Timeout,
	})

	a := &app{}
	var opts []accent.Option
	if record && cfg.History.Enabled && !dryRun {
		database, err := openHistoryDB(ctx, cfg.History.Path)
		if err != nil {
			logger := logging.Component("cli")
			logger.Warn().Err(err).Msg("history disabled")
		} else {
			a.closeFn = database.Close
			opts = append(opts, accent.WithHistory(db.NewHistoryRepository(database)))
		}
	}

	a.service = accent.NewService(store, opts...)
	return a
}

func openHistoryDB(ctx context.Context, path string) (*db.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return database, nil
}

// PreflightError describes a problem the user can fix before retrying.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n  Hint: ")
		b.WriteString(e.Hint)
	}
	if e.NextStep != "" {
		b.WriteString("\n  Next: ")
		b.WriteString(e.NextStep)
	}
	return b.String()
}
