package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/macaccent/internal/colormath"
	"golang.org/x/term"
)

const tablePadding = 2

var headingStyle = lipgloss.NewStyle().Bold(true)

// WriteOutput encodes v as indented JSON.
func WriteOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

// colorEnabled reports whether swatches should be drawn on out.
func colorEnabled(out io.Writer) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// swatch renders a small block in c. It belongs in the last table column since
// escape sequences throw off tabwriter's width accounting.
func swatch(out io.Writer, c colormath.RGB) string {
	if !colorEnabled(out) {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
}

func heading(out io.Writer, text string) string {
	if !colorEnabled(out) {
		return text
	}
	return headingStyle.Render(text)
}
