package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/model"
)

// statsCommand creates the stats command for inspecting a layout.
func (c *CLI) statsCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats [layout.json]",
		Short: "Show placement statistics of a layout",
		Long: `Show placement statistics of a layout.

Prints how many words were placed and dropped, the average number of spiral
attempts per word and the share of the canvas covered by word boxes. With
--top, the largest placed words are listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := model.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			fmt.Println(renderStats(layout, top))
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "list the N largest placed words (0 to hide)")

	return cmd
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderStats formats the summary table and, if top > 0, the word table.
func renderStats(l model.Layout, top int) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString("\n")
	b.WriteString(summaryTable(l).Render())

	if words := topWords(l.Words, top); len(words) > 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleTitle.Render(fmt.Sprintf("Top %d words", len(words))))
		b.WriteString("\n")
		b.WriteString(wordTable(words).Render())
	}
	if len(l.Dropped) > 0 {
		names := make([]string, len(l.Dropped))
		for i, w := range l.Dropped {
			names[i] = w.Text
		}
		b.WriteString("\n\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("Dropped: %s", strings.Join(names, ", "))))
	}
	return b.String()
}

func summaryTable(l model.Layout) *table.Table {
	s := l.Stats
	rows := [][]string{
		{"Canvas", fmt.Sprintf("%g × %g", l.Width, l.Height)},
		{"Placed", fmt.Sprintf("%d of %d", s.Placed, s.Total)},
		{"Dropped", strconv.Itoa(s.Dropped)},
		{"Attempts", fmt.Sprintf("%.1f per word", s.AverageAttempts)},
		{"Coverage", fmt.Sprintf("%.1f%%", s.Coverage)},
	}
	if l.Rotation != "" {
		rows = append(rows, []string{"Rotation", l.Rotation})
	}
	if l.Scale != "" {
		rows = append(rows, []string{"Scale", l.Scale})
	}
	if l.Seed != 0 {
		rows = append(rows, []string{"Seed", strconv.FormatUint(l.Seed, 10)})
	}
	if l.ID != "" {
		rows = append(rows, []string{"ID", l.ID})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return tableCellStyle.Foreground(colorGray)
			}
			return tableCellStyle.Foreground(colorWhite)
		})
}

func wordTable(words []model.PlacedWord) *table.Table {
	rows := make([][]string, len(words))
	for i, w := range words {
		rows[i] = []string{
			w.Text,
			formatValue(w.Value),
			fmt.Sprintf("%.1f", w.FontSize),
			fmt.Sprintf("%.0f°", w.Rotation),
			strconv.Itoa(w.Attempts),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Word", "Value", "Size", "Angle", "Tries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 0 {
				return tableCellStyle.Foreground(colorCyan)
			}
			return tableCellStyle
		})
}

// topWords returns the n largest placed words, largest first.
func topWords(words []model.PlacedWord, n int) []model.PlacedWord {
	if n <= 0 {
		return nil
	}
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b model.PlacedWord) int {
		switch {
		case a.FontSize > b.FontSize:
			return -1
		case a.FontSize < b.FontSize:
			return 1
		}
		return 0
	})
	return sorted[:min(n, len(sorted))]
}
