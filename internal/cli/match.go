package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opencode-ai/macaccent/internal/colormath"
	"github.com/opencode-ai/macaccent/internal/matcher"
	"github.com/opencode-ai/macaccent/internal/models"
	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/opencode-ai/macaccent/internal/wal"
	"github.com/spf13/cobra"
)

// matchInput holds the flags shared by match and apply.
type matchInput struct {
	policy  string
	useWal  bool
	walFile string
}

func (m *matchInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&m.policy, "policy", "p", "", "matching policy: majority or cumulative (default from config)")
	cmd.Flags().BoolVar(&m.useWal, "wal", false, "add the colors from pywal's colors.json")
	cmd.Flags().StringVar(&m.walFile, "wal-file", "", "path to a pywal colors.json (implies --wal)")
}

func (m *matchInput) resolvePolicy() (models.Policy, error) {
	value := m.policy
	if strings.TrimSpace(value) == "" {
		value = GetConfig().Match.Policy
	}
	return models.ParsePolicy(value)
}

// colors gathers hex colours from args and, when requested, pywal.
func (m *matchInput) colors(args []string) ([]string, error) {
	hexes := make([]string, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				hexes = append(hexes, part)
			}
		}
	}

	if m.useWal || m.walFile != "" {
		path := m.walFile
		if path == "" {
			path = GetConfig().Wal.ColorsPath
		}
		walColors, err := wal.Load(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &PreflightError{
					Message:  fmt.Sprintf("pywal colors not found at %s", path),
					Hint:     "Run pywal on a wallpaper first, or point --wal-file at a colors.json",
					NextStep: "wal -i <wallpaper>",
				}
			}
			return nil, err
		}
		hexes = append(hexes, walColors...)
	}

	if len(hexes) == 0 {
		return nil, errors.New("no colors given (pass hex colors or --wal)")
	}
	return hexes, nil
}

var (
	matchFlags   matchInput
	matchExplain bool
)

func init() {
	rootCmd.AddCommand(matchCmd)
	matchFlags.register(matchCmd)
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "show per-color scores")
}

type matchResult struct {
	Policy models.Policy   `json:"policy"`
	Inputs []string        `json:"inputs"`
	Color  colorView       `json:"color"`
	Scores []matcher.Score `json:"scores,omitempty"`
}

var matchCmd = &cobra.Command{
	Use:   "match [hex...]",
	Short: "Find the system color closest to the given hex colors",
	Long: `Find the system accent color closest to one or more hex colors without
changing any preference. Colors may be given as arguments (comma separated or
separate) and/or read from pywal with --wal.`,
	Example: `  macaccent match f0ae5b
  macaccent match '#c0f6ad' '#ffbfd2' --policy cumulative
  macaccent match --wal --explain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		policy, err := matchFlags.resolvePolicy()
		if err != nil {
			return err
		}
		hexes, err := matchFlags.colors(args)
		if err != nil {
			return err
		}

		key, err := matcher.Closest(policy, hexes)
		if err != nil {
			return err
		}

		result := matchResult{Policy: policy, Inputs: hexes, Color: newColorView(key)}
		if matchExplain {
			result.Scores, err = matcher.Scores(hexes)
			if err != nil {
				return err
			}
		}

		if IsJSONOutput() {
			return WriteOutput(out, result)
		}

		printMatch(out, key, policy, len(hexes))
		if matchExplain {
			fmt.Fprintln(out)
			return writeScores(out, result.Scores)
		}
		return nil
	},
}

func printMatch(out io.Writer, key palette.Key, policy models.Policy, inputs int) {
	entry := palette.MustLookup(key)
	fmt.Fprintf(out, "%s %s (%d) %s\n", heading(out, "Closest color:"), entry.Name, key, swatch(out, entry.Color))
	fmt.Fprintf(out, "  Policy: %s over %d color(s)\n", policy, inputs)
}

func writeScores(out io.Writer, scores []matcher.Score) error {
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		entry := palette.MustLookup(s.Key)
		rows = append(rows, []string{
			s.Key.String(),
			s.Name,
			fmt.Sprintf("%.6f", s.Distance),
			fmt.Sprintf("%d", s.Votes),
			swatch(out, entry.Color),
		})
	}
	return writeTable(out, []string{"KEY", "NAME", "DISTANCE", "VOTES", ""}, rows)
}

// inputSwatches renders the inputs for human output; invalid inputs are left out.
func inputSwatches(out io.Writer, hexes []string) string {
	parts := make([]string, 0, len(hexes))
	for _, hex := range hexes {
		rgb, err := colormath.HexToRGB(hex)
		if err != nil {
			continue
		}
		parts = append(parts, swatch(out, rgb))
	}
	return strings.Join(parts, "")
}
