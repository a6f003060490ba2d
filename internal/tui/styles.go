package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/labsys/labclient/internal/tableview"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBar   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)

	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorSubtext0).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().Background(colorMantle)

	keyHelpStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	descHelpStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)

	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	errStyle   = lipgloss.NewStyle().Foreground(colorError)
	hintStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	titleStyle = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
)

func tableStyles() tableview.Styles {
	return tableview.Styles{
		Header:   lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Row:      lipgloss.NewStyle().Foreground(colorText),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Label:    labelStyle,
	}
}

// renderBar paints text across the full terminal width on a solid background.
func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
