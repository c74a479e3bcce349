package cli

import (
	"fmt"

	"github.com/opencode-ai/macaccent/internal/models"
	"github.com/spf13/cobra"
)

var applyFlags matchInput

func init() {
	rootCmd.AddCommand(applyCmd)
	applyFlags.register(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply [hex...]",
	Short: "Set accent and highlight to the closest system color",
	Long: `Pick the system color closest to the given hex colors and set both the
accent and highlight preferences to it. By default each input votes for its
nearest color and the most common one wins.`,
	Example: `  macaccent apply --wal
  macaccent apply 1d2021 cc241d 98971a d79921 --policy cumulative`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		policy, err := applyFlags.resolvePolicy()
		if err != nil {
			return err
		}
		hexes, err := applyFlags.colors(args)
		if err != nil {
			return err
		}

		a := openApp(ctx, cmd.ErrOrStderr(), true)
		defer a.Close()

		key, err := a.service.SetClosestWith(ctx, policy, hexes)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(out, matchResult{
				Policy: policy,
				Inputs: hexes,
				Color:  newColorView(key),
			})
		}

		if swatches := inputSwatches(out, hexes); swatches != "" {
			fmt.Fprintf(out, "%s %s\n", heading(out, "Inputs:"), swatches)
		}
		printMatch(out, key, policy, len(hexes))
		fmt.Fprintf(out, "Set %s to %s\n", targetPhrase(models.TargetBoth), key.Name())
		return nil
	},
}
