package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencode-ai/macaccent/internal/config"
	"github.com/spf13/cobra"
)

var (
	initForce bool

	configDirFunc = func() string {
		return filepath.Dir(config.DefaultPath())
	}
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := createConfigFile()
		out := cmd.OutOrStdout()

		if IsJSONOutput() {
			return WriteOutput(out, map[string]string{
				"status":  result.status,
				"message": result.message,
			})
		}

		switch result.status {
		case "failed":
			return fmt.Errorf("init failed: %s", result.message)
		default:
			fmt.Fprintln(out, result.message)
		}
		return nil
	},
}

type initResult struct {
	status  string
	message string
}

const configTemplate = `# macaccent configuration file
#
# Every key can also be set through the environment, e.g.
# MACACCENT_MATCH_POLICY=cumulative.

defaults:
  # Path to the macOS defaults tool.
  binary: %q
  # Preference domain holding AppleAccentColor and AppleHighlightColor.
  domain: %q
  # Per-command timeout; 0 waits forever.
  timeout: 0s

match:
  # majority: each color votes for its nearest system color.
  # cumulative: smallest summed distance over all colors.
  policy: %s

wal:
  colors_path: %q

history:
  enabled: %t
  path: %q

logging:
  level: %s
  format: %s
`

func createConfigFile() initResult {
	dir := configDirFunc()
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		return initResult{status: "skipped", message: fmt.Sprintf("Config already exists at %s (use --force to overwrite)", path)}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return initResult{status: "failed", message: fmt.Sprintf("cannot create %s: %v", dir, err)}
	}

	cfg := config.DefaultConfig()
	content := fmt.Sprintf(configTemplate,
		cfg.Defaults.Binary,
		cfg.Defaults.Domain,
		cfg.Match.Policy,
		cfg.Wal.ColorsPath,
		cfg.History.Enabled,
		cfg.History.Path,
		cfg.Logging.Level,
		cfg.Logging.Format,
	)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return initResult{status: "failed", message: fmt.Sprintf("cannot write %s: %v", path, err)}
	}
	return initResult{status: "done", message: fmt.Sprintf("Wrote config to %s", path)}
}
