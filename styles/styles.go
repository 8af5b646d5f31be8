// Package styles renders coloured terminal output.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var defaultStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4"))

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F45E6E"))

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6ef4a1ff"))

var infoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6EC4F4"))

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F4C76E"))

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7D56F4")).
	MarginBottom(1)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#6EC4F4"))

var mutedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#8A8A8A"))

// PrintFS prints a styled line. style is "error", "success", "info",
// "warn" or anything else for the default colour.
func PrintFS(style string, text string, a ...interface{}) {
	fmt.Println(SprintfS(style, text, a...))
}

// SprintfS formats and styles text.
func SprintfS(style string, format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	switch style {
	case "error":
		text = errorStyle.Render(text)
	case "success":
		text = successStyle.Render(text)
	case "info":
		text = infoStyle.Render(text)
	case "warn":
		text = warnStyle.Render(text)
	default:
		text = defaultStyle.Render(text)
	}
	return text
}
