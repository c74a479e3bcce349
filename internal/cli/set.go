package cli

import (
	"fmt"

	"github.com/opencode-ai/macaccent/internal/models"
	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <accent|highlight|both> <color>",
	Short: "Set the accent and/or highlight color",
	Long: `Set the accent color, the highlight color, or both.

The color may be a name (Blue, Graphite, Red, Orange, Yellow, Green, Purple,
Pink), its numeric key, or "default". Blue and "default" clear the preference
so macOS falls back to its built-in color. Negative keys go after "--".`,
	Example: `  macaccent set both green
  macaccent set accent -- -1
  macaccent set highlight default`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		target, err := models.ParseTarget(args[0])
		if err != nil {
			return err
		}
		key, err := palette.Parse(args[1])
		if err != nil {
			return err
		}

		a := openApp(ctx, cmd.ErrOrStderr(), true)
		defer a.Close()

		if err := a.service.Apply(ctx, target, key); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(out, struct {
				Target models.Target `json:"target"`
				Color  colorView     `json:"color"`
			}{target, newColorView(key)})
		}

		if key == palette.Sentinel {
			fmt.Fprintf(out, "Reset %s to the system default (Blue)\n", targetPhrase(target))
			return nil
		}
		fmt.Fprintf(out, "Set %s to %s (%d)\n", targetPhrase(target), key.Name(), key)
		return nil
	},
}

func targetPhrase(target models.Target) string {
	switch target {
	case models.TargetAccent:
		return "accent color"
	case models.TargetHighlight:
		return "highlight color"
	default:
		return "accent and highlight colors"
	}
}
