package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface2 lipgloss.Color = "#585b70"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
)

var (
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginRight(1)
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorSurface2).Padding(0, 1).Width(30)
	inputFocused   = inputStyle.BorderForeground(colorFocus)
	completedStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorOverlay1)
	listboxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface2).Padding(0, 1).Width(30)
	resultStyle    = lipgloss.NewStyle().Foreground(colorText)
	focusedStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	annotateStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorAccent)
	buttonStyle    = lipgloss.NewStyle().Padding(0, 2).Foreground(colorSubtext0).Background(colorSurface1)
	buttonFocused  = buttonStyle.Foreground(colorBase).Background(colorFocus)
	helpStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
)
