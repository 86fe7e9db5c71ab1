package tui

import "github.com/charmbracelet/lipgloss"

// Status line and overlay styles. They are rebuilt by applyTheme.
var (
	colorBase    lipgloss.Color
	colorSurface lipgloss.Color
	colorText    lipgloss.Color
	colorSubtext lipgloss.Color
	colorDim     lipgloss.Color
	colorAccent  lipgloss.Color

	titleStyle   lipgloss.Style
	helpStyle    lipgloss.Style
	helpKeyStyle lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	errorStyle   lipgloss.Style
	overlayStyle lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface = t.Surface0
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Lavender)

	helpStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
		Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
		Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Peach).
		Bold(true)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Surface1).
		Background(t.Mantle).
		Padding(0, 1)
}
