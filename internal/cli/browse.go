package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/model"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive word list.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [layout.json]",
		Short: "Browse placed and dropped words interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := model.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			p := tea.NewProgram(NewWordListModel(layout), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// WordListModel - Interactive layout inspection
// =============================================================================

// wordTab selects which word list is shown.
type wordTab int

const (
	tabPlaced wordTab = iota
	tabDropped
)

// WordListModel is the bubbletea model for browsing a layout's words.
type WordListModel struct {
	Layout model.Layout
	Tab    wordTab
	Cursor int
	Height int
	Offset int
}

// NewWordListModel creates a new word list model.
func NewWordListModel(l model.Layout) WordListModel {
	return WordListModel{
		Layout: l,
		Height: 15,
	}
}

func (m WordListModel) Init() tea.Cmd {
	return nil
}

func (m WordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			if m.Tab == tabPlaced && len(m.Layout.Dropped) > 0 {
				m.Tab = tabDropped
			} else {
				m.Tab = tabPlaced
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m WordListModel) rowCount() int {
	if m.Tab == tabDropped {
		return len(m.Layout.Dropped)
	}
	return len(m.Layout.Words)
}

func (m WordListModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Placed words (%d)", len(m.Layout.Words))
	if m.Tab == tabDropped {
		title = fmt.Sprintf("Dropped words (%d)", len(m.Layout.Dropped))
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ placed/dropped  q quit"))
	b.WriteString("\n\n")

	if m.rowCount() == 0 {
		b.WriteString(listDimStyle.Render("  no words"))
		return b.String()
	}

	end := min(m.Offset+m.Height, m.rowCount())
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	if m.Tab == tabDropped {
		t.Headers("", "Word", "Value", "Tries")
		for i := m.Offset; i < end; i++ {
			w := m.Layout.Dropped[i]
			t.Row(cursorMark(i == m.Cursor), w.Text, formatValue(w.Value), strconv.Itoa(m.Layout.Attempts[w.Text]))
		}
	} else {
		t.Headers("", "Word", "Value", "Size", "Angle", "Position", "Tries")
		for i := m.Offset; i < end; i++ {
			w := m.Layout.Words[i]
			t.Row(
				cursorMark(i == m.Cursor),
				w.Text,
				formatValue(w.Value),
				fmt.Sprintf("%.1f", w.FontSize),
				fmt.Sprintf("%.0f°", w.Rotation),
				fmt.Sprintf("%.0f, %.0f", w.X, w.Y),
				strconv.Itoa(w.Attempts),
			)
		}
	}

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rowCount())))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func cursorMark(current bool) string {
	if current {
		return "▸"
	}
	return " "
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
