package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary lipgloss.AdaptiveColor // revolutionary red
	Accent  lipgloss.AdaptiveColor // gold
	Text    lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Styles
	Base        lipgloss.Style
	Title       lipgloss.Style // page and hero headlines
	HeroAccent  lipgloss.Style // highlighted part of the headline
	Heading     lipgloss.Style // section headings
	Subheading  lipgloss.Style
	Tag         lipgloss.Style // small upper-case labels
	Quote       lipgloss.Style
	QuoteSource lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	YearBadge   lipgloss.Style
	Trigger     lipgloss.Style
	Link        lipgloss.Style
	Focused     lipgloss.Style // focused trigger marker

	// Navigation bar
	NavBar    lipgloss.Style
	NavLogo   lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	// Overlay
	Modal        lipgloss.Style
	ModalTag     lipgloss.Style
	ModalHeading lipgloss.Style

	// Footer and status
	MutedText   lipgloss.Style
	StatusText  lipgloss.Style
	StatusError lipgloss.Style
}

// DefaultTheme returns the red and gold reading theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: ColorPrimary,
		Accent:  ColorAccent,
		Text:    ColorText,
		Subtext: ColorSubtext,
		Muted:   ColorMuted,

		Border:    ColorBorder,
		Highlight: ColorBgHighlight,
	}

	t.Base = r.NewStyle().Foreground(t.Text)

	t.Title = r.NewStyle().Foreground(t.Text).Bold(true)
	t.HeroAccent = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Heading = r.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Accent)
	t.Subheading = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Tag = r.NewStyle().Foreground(t.Accent).Bold(true)

	t.Quote = r.NewStyle().
		Foreground(t.Subtext).
		Italic(true).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		PaddingLeft(SpaceSM)
	t.QuoteSource = r.NewStyle().Foreground(t.Accent).PaddingLeft(SpaceMD)

	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, SpaceXS)
	t.CardTitle = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.YearBadge = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	t.Trigger = r.NewStyle().Foreground(t.Primary).Underline(true)
	t.Link = r.NewStyle().Foreground(ColorLink)
	t.Focused = r.NewStyle().Foreground(t.Accent).Bold(true)

	t.NavBar = r.NewStyle().
		Background(ThemeBg("#7F1D1D")).
		Foreground(ThemeFg("#FEF3C7"))
	t.NavLogo = r.NewStyle().Foreground(ThemeFg("#FDE68A")).Bold(true)
	t.NavItem = r.NewStyle().Foreground(ThemeFg("#FEF3C7")).Padding(0, 1)
	t.NavActive = r.NewStyle().
		Foreground(ThemeFg("#FDE68A")).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.Modal = r.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(SpaceXS, SpaceSM)
	t.ModalTag = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FEF3C7"}).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)
	t.ModalHeading = r.NewStyle().Foreground(t.Accent).Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.StatusText = r.NewStyle().Foreground(ColorSuccess)
	t.StatusError = r.NewStyle().Foreground(ColorDanger).Bold(true)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
