package cli

import (
	"fmt"
	"io"

	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

type colorView struct {
	Key  int    `json:"key"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
	Set  bool   `json:"set"`
}

func newColorView(key palette.Key) colorView {
	view := colorView{Key: int(key), Name: key.Name(), Set: key != palette.Sentinel}
	if entry, ok := palette.Lookup(key); ok {
		view.Hex = entry.Color.Hex()
	}
	return view
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current accent and highlight colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a := openApp(ctx, cmd.ErrOrStderr(), false)
		defer a.Close()

		current, err := a.service.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to read highlight color: %w", err)
		}

		accentView := newColorView(current.Accent)
		highlightView := newColorView(current.Highlight)

		if IsJSONOutput() {
			return WriteOutput(out, map[string]colorView{
				"accent":    accentView,
				"highlight": highlightView,
			})
		}

		rows := [][]string{
			colorRow(out, "accent", current.Accent),
			colorRow(out, "highlight", current.Highlight),
		}
		return writeTable(out, []string{"PREFERENCE", "KEY", "NAME", "HEX", ""}, rows)
	},
}

func colorRow(out io.Writer, label string, key palette.Key) []string {
	name := key.Name()
	if key == palette.Sentinel {
		name += " (default)"
	}
	row := []string{label, key.String(), name, "", ""}
	if entry, ok := palette.Lookup(key); ok {
		row[3] = entry.Color.Hex()
		row[4] = swatch(out, entry.Color)
	}
	return row
}
