package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/debug"
)

// MarkdownRenderer renders prose blocks with glamour, rebuilding the term
// renderer only when the wrap width changes.
type MarkdownRenderer struct {
	style string // "auto", "dark" or "light"
	width int
	tr    *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for the given glamour style.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: style}
}

func (m *MarkdownRenderer) ensure(width int) {
	if m.tr != nil && m.width == width {
		return
	}
	styleOpt := glamour.WithAutoStyle()
	switch m.style {
	case "dark", "light":
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	tr, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debug.Log("markdown: renderer init failed: %v", err)
		tr = nil
	}
	m.tr = tr
	m.width = width
}

// Render renders md wrapped at width. Rendering errors fall back to plain
// wrapped text.
func (m *MarkdownRenderer) Render(md string, width int) string {
	if width < 10 {
		width = 10
	}
	m.ensure(width)
	if m.tr != nil {
		out, err := m.tr.Render(md)
		if err == nil {
			// glamour pads with blank lines; the layout adds its own spacing
			return strings.Trim(out, "\n")
		}
		debug.Log("markdown: render failed: %v", err)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(md))
}
