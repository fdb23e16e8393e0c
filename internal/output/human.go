package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jgmartins/pubharvest/internal/eutils"
	"github.com/jgmartins/pubharvest/internal/export"
)

var (
	cyan        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bold        = lipgloss.NewStyle().Bold(true)
	dim         = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// truncate cuts a string to maxLen runes, appending "…" if cut. The
// cut is rune-aware so multi-byte titles never split mid-character.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Headers(headers...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
}

func formatSearchHuman(w io.Writer, result *eutils.SearchResult) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "🔬 No results found.")
		return nil
	}

	header := fmt.Sprintf("🔬 Found %d results", result.Count)
	if len(result.PMIDs) < result.Count {
		header += fmt.Sprintf(" (showing %d)", len(result.PMIDs))
	}
	fmt.Fprintln(w, bold.Render(header))
	if result.QueryTranslation != "" {
		fmt.Fprintf(w, "   Query: %s\n", dim.Render(result.QueryTranslation))
	}
	fmt.Fprintln(w)

	t := newTable("#", "PMID")
	for i, id := range result.PMIDs {
		t.Row(fmt.Sprintf("%d", i+1), cyan.Render(id))
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func formatDatasetHuman(w io.Writer, rows []export.Publication) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "📭 No publications harvested.")
		return nil
	}

	fmt.Fprintln(w, bold.Render(fmt.Sprintf("📚 Harvested %d publications", len(rows))))
	fmt.Fprintln(w)

	t := newTable("PMID", "Title", "Year", "Journal", "Authors")
	for _, row := range rows {
		t.Row(
			cyan.Render(row.PMID),
			bold.Render(truncate(row.Title, 48)),
			yearOf(row.Date),
			truncate(row.Journal, 24),
			truncate(row.Authors, 32),
		)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

// yearOf reduces a formatted publication date to its year; the no-date
// sentinel becomes an empty cell.
func yearOf(date string) string {
	if date == "" || date == eutils.NoDateFound {
		return ""
	}
	return strings.SplitN(date, "-", 2)[0]
}
