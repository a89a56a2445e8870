package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/content"
)

// renderNavBar draws the sticky navigation. Wide terminals get the short
// desktop subset; narrow ones get a menu toggle and, when expanded, a
// dropdown of every section with its long label.
func renderNavBar(site *content.Site, active content.SectionID, menuOpen bool, width int, theme Theme) string {
	logo := site.Logo
	if logo == "" {
		logo = "§"
	}
	brand := theme.NavLogo.Render(" " + logo + "  " + site.Title + " ")

	if width >= WideNavWidth {
		var items []string
		for _, sec := range site.Sections {
			if !sec.InDesktopNav {
				continue
			}
			style := theme.NavItem
			if sec.ID == active {
				style = theme.NavActive
			}
			items = append(items, style.Render(sec.ShortLabel()))
		}
		bar := brand + strings.Join(items, " ")
		return theme.NavBar.Width(width).Render(truncateBar(bar, width))
	}

	toggle := "☰ Menú (m)"
	if menuOpen {
		toggle = "✕ Cerrar (m)"
	}
	gap := width - lipgloss.Width(brand) - lipgloss.Width(toggle) - 1
	if gap < 1 {
		gap = 1
	}
	bar := theme.NavBar.Width(width).Render(brand + strings.Repeat(" ", gap) + theme.NavItem.UnsetPadding().Render(toggle))
	if !menuOpen {
		return bar
	}

	rows := []string{bar}
	for i, sec := range site.Sections {
		style := theme.NavItem
		marker := "  "
		if sec.ID == active {
			style = theme.NavActive
			marker = "▸ "
		}
		rows = append(rows, theme.NavBar.Width(width).Render(marker+style.Render(sectionLabel(i, sec))))
	}
	return strings.Join(rows, "\n")
}

func truncateBar(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
