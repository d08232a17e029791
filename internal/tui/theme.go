package tui

import "github.com/charmbracelet/lipgloss"

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything goes through lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  = ac("240", "243")
	colorAccent = ac("25", "39")
	colorError  = ac("124", "203")
	colorDirty  = ac("94", "179")

	styleBreadcrumb = lipgloss.NewStyle().Foreground(colorMuted)
	styleHeading    = lipgloss.NewStyle().Bold(true)
	styleTwisty     = lipgloss.NewStyle().Foreground(colorMuted)
	styleTag        = lipgloss.NewStyle().Foreground(colorAccent)
	styleLink       = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
	styleStatus     = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusErr  = lipgloss.NewStyle().Foreground(colorError)
	styleDirtyMark  = lipgloss.NewStyle().Foreground(colorDirty)
)
