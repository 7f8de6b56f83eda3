package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// Color palette, adaptive for light and dark terminals. Light mode colors
// tuned for WCAG AA compliance (contrast ratio >= 4.5:1).
var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Difficulty badge backgrounds, subtle washes behind the scale color
	ColorDiffBeginnerBg     = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}
	ColorDiffIntermediateBg = lipgloss.AdaptiveColor{Light: "#D1ECF1", Dark: "#1A3344"}
	ColorDiffAdvancedBg     = lipgloss.AdaptiveColor{Light: "#FFE8CC", Dark: "#3D2A1A"}
	ColorDiffExpertBg       = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"}
)

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for the active panel
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// RenderDifficultyBadge returns a styled four-letter difficulty badge.
func RenderDifficultyBadge(d model.DifficultyLevel) string {
	var fg, bg lipgloss.AdaptiveColor
	var label string

	switch d {
	case model.DifficultyBeginner:
		fg, bg, label = ColorSuccess, ColorDiffBeginnerBg, "BEGN"
	case model.DifficultyIntermediate:
		fg, bg, label = ColorInfo, ColorDiffIntermediateBg, "INTM"
	case model.DifficultyAdvanced:
		fg, bg, label = ColorWarning, ColorDiffAdvancedBg, "ADVD"
	case model.DifficultyExpert:
		fg, bg, label = ColorDanger, ColorDiffExpertBg, "XPRT"
	default:
		fg, bg, label = ColorMuted, ColorBgSubtle, "????"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Render(label)
}

// RenderDemandBadge colors an industry-demand string (high, medium, low).
func RenderDemandBadge(demand string) string {
	var fg lipgloss.AdaptiveColor
	switch demand {
	case "very high":
		fg = ColorSuccess
	case "high":
		fg = ColorSuccess
	case "medium":
		fg = ColorWarning
	case "low":
		fg = ColorDanger
	default:
		fg = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(fg).Render(demand)
}

// RenderProgressBar renders a horizontal bar for a value between 0 and 1.
func RenderProgressBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	var barColor lipgloss.AdaptiveColor
	switch {
	case value >= 0.75:
		barColor = t.Expert
	case value >= 0.5:
		barColor = t.Advanced
	case value >= 0.25:
		barColor = t.Intermediate
	default:
		barColor = t.Beginner
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
