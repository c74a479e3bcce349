package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/opencode-ai/macaccent/internal/db"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries to show")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show colors previously applied by macaccent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		cfg := GetConfig()

		if !cfg.History.Enabled {
			return &PreflightError{
				Message:  "history is disabled",
				Hint:     "Set history.enabled: true in " + configFileInUse(),
				NextStep: "macaccent init",
			}
		}

		database, err := openHistoryDB(ctx, cfg.History.Path)
		if err != nil {
			return err
		}
		defer database.Close()

		entries, err := db.NewHistoryRepository(database).List(ctx, historyLimit)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No colors applied yet")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.AppliedAt.Local().Format(time.DateTime),
				string(entry.Target),
				fmt.Sprintf("%s (%d)", entry.Name, entry.Key),
				string(entry.Policy),
				formatInputs(entry.Inputs),
			})
		}
		return writeTable(out, []string{"APPLIED", "TARGET", "COLOR", "POLICY", "INPUTS"}, rows)
	},
}

func formatInputs(inputs []string) string {
	const maxShown = 4
	if len(inputs) == 0 {
		return "-"
	}
	if len(inputs) <= maxShown {
		return strings.Join(inputs, " ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(inputs[:maxShown], " "), len(inputs)-maxShown)
}
