package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Colors and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders table and list headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleWarning renders dropped words and other soft failures.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	stylePath    = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// uiOut receives all status output. Tests swap it for a buffer.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon lipgloss.Style, mark, format string, args ...any) {
	fmt.Fprintln(uiOut, icon.Render(mark)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printLine(styleOK, "✓", format, args...) }
func printError(format string, args ...any)   { printLine(styleFailed, "✗", format, args...) }
func printInfo(format string, args ...any)    { printLine(styleNote, "›", format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+stylePath.Render(path))
}

// printKeyValue prints an aligned label and value, as in the serve banner.
func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleNote.Width(10).Render(key)+" "+stylePath.Render(value))
}

// printNextStep suggests the command that continues the workflow.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(uiOut) }

// =============================================================================
// Placement Summary
// =============================================================================

// placementSummary describes a layout run, e.g. "18 of 20 placed · 2 dropped · cached".
func placementSummary(placed, dropped int, cached bool) string {
	parts := []string{fmt.Sprintf("%d placed", placed)}
	if dropped > 0 {
		parts = []string{
			fmt.Sprintf("%d of %d placed", placed, placed+dropped),
			fmt.Sprintf("%d dropped", dropped),
		}
	}
	if cached {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return strings.Join(parts, " · ")
}

// printStats prints the placement summary under the written files.
func printStats(placed, dropped int, cached bool) {
	line := StyleDim.Render(placementSummary(placed, dropped, cached))
	if dropped > 0 {
		line += " " + StyleWarning.Render("(raise --max-attempts or the canvas size to fit more)")
	}
	fmt.Fprintln(uiOut, "  "+line)
}
