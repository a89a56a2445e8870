package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
	SpaceXL = 6
)

// Layout breakpoints (terminal columns)
const (
	// WideNavWidth is the narrowest terminal that shows the full navigation
	// bar instead of the menu toggle.
	WideNavWidth = 100
	// TwoColumnWidth is the narrowest page that lays influences side by side.
	TwoColumnWidth = 90
	// MaxPageWidth caps the reading column.
	MaxPageWidth = 110
	// gutterWidth is reserved on the left for the focus marker.
	gutterWidth = 2
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#F5E9D3", Dark: "#3B2F2F"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5F5F4"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#44403C", Dark: "#D6D3D1"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#78716C", Dark: "#A8A29E"}
	ColorBorder      = lipgloss.AdaptiveColor{Light: "#D6D3D1", Dark: "#57534E"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#F87171"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"}
	ColorLink    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBorder).
		Render(strings.Repeat("─", width))
}

// RenderStarDivider renders the gold separator used around quotes.
func RenderStarDivider(width int) string {
	if width <= 0 {
		return ""
	}
	const star = " ★ "
	side := (width - len([]rune(star))) / 2
	if side < 1 {
		return lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat("─", width))
	}
	line := strings.Repeat("─", side) + star + strings.Repeat("─", width-side-len([]rune(star)))
	return lipgloss.NewStyle().Foreground(ColorAccent).Render(line)
}
