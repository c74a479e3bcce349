package cli

import (
	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/opencode-ai/macaccent/internal/prefs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(paletteCmd)
}

type paletteView struct {
	colorView
	Highlight string `json:"highlight_value"`
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the system accent colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		keys := palette.Keys()
		if IsJSONOutput() {
			views := make([]paletteView, 0, len(keys))
			for _, key := range keys {
				views = append(views, paletteView{
					colorView: newColorView(key),
					Highlight: prefs.HighlightValue(palette.MustLookup(key)),
				})
			}
			return WriteOutput(out, views)
		}

		rows := make([][]string, 0, len(keys))
		for _, key := range keys {
			entry := palette.MustLookup(key)
			rows = append(rows, []string{
				key.String(),
				entry.Name,
				entry.Color.Hex(),
				prefs.HighlightValue(entry),
				swatch(out, entry.Color),
			})
		}
		return writeTable(out, []string{"KEY", "NAME", "HEX", "HIGHLIGHT VALUE", ""}, rows)
	},
}
