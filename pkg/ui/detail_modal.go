package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/content"
)

const (
	modalTagLabel   = "Explicación Detallada"
	modalCloseLabel = "Cerrar"
	modalMaxWidth   = 84
)

// DetailModal renders the open DetailRecord with its own scroll surface.
// Background scrolling stays locked while it is shown.
type DetailModal struct {
	theme  Theme
	keys   keyMap
	rec    content.DetailRecord
	vp     viewport.Model
	width  int
	height int
}

// NewDetailModal creates an empty modal.
func NewDetailModal(theme Theme) *DetailModal {
	return &DetailModal{
		theme: theme,
		keys:  defaultKeyMap(),
		vp:    viewport.New(40, 10),
	}
}

// SetRecord shows rec from the top.
func (d *DetailModal) SetRecord(rec content.DetailRecord) {
	d.rec = rec.Normalized()
	d.refresh()
	d.vp.GotoTop()
}

// Record returns the record being shown.
func (d *DetailModal) Record() content.DetailRecord {
	return d.rec
}

// SetSize fits the modal inside a terminal of the given size.
func (d *DetailModal) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.refresh()
}

func (d *DetailModal) innerWidth() int {
	w := d.width - 2*SpaceLG
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	// border + horizontal padding
	w -= 2 + 2*SpaceSM
	if w < 20 {
		w = 20
	}
	return w
}

func (d *DetailModal) refresh() {
	w := d.innerWidth()
	// border, vertical padding, header rows and the close hint
	h := d.height - 2*SpaceXS - 2 - 2 - 4
	if h < 3 {
		h = 3
	}
	d.vp.Width = w
	d.vp.Height = h
	d.vp.SetContent(d.body(w))
}

// body renders the intro and the ordered sections. A record without
// sections renders its intro only.
func (d *DetailModal) body(width int) string {
	t := d.theme
	var parts []string
	if d.rec.Intro != "" {
		parts = append(parts, t.Base.Italic(true).Width(width).Render(d.rec.Intro))
	}
	for _, s := range d.rec.Sections {
		block := t.ModalHeading.Width(width).Render(s.Heading)
		if s.Text != "" {
			block += "\n" + t.Base.Width(width).Render(s.Text)
		}
		parts = append(parts, block)
	}
	return strings.Join(parts, "\n\n")
}

// Update handles keys while the modal is open and reports whether the
// reader asked to close it.
func (d *DetailModal) Update(msg tea.Msg) (closeRequested bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Close):
			return true
		case key.Matches(msg, d.keys.Down):
			d.vp.LineDown(1)
		case key.Matches(msg, d.keys.Up):
			d.vp.LineUp(1)
		case key.Matches(msg, d.keys.HalfDown):
			d.vp.LineDown(d.vp.Height / 2)
		case key.Matches(msg, d.keys.HalfUp):
			d.vp.LineUp(d.vp.Height / 2)
		case key.Matches(msg, d.keys.Top):
			d.vp.GotoTop()
		case key.Matches(msg, d.keys.Bottom):
			d.vp.GotoBottom()
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			d.vp.LineDown(SpaceMD)
		case tea.MouseButtonWheelUp:
			d.vp.LineUp(SpaceMD)
		}
	}
	return false
}

// Offset is the modal's own scroll position.
func (d *DetailModal) Offset() int {
	return d.vp.YOffset
}

// View renders the modal box without placement.
func (d *DetailModal) View() string {
	t := d.theme
	w := d.innerWidth()

	header := t.ModalTag.Render(modalTagLabel) + "\n" +
		t.CardTitle.Width(w).Render(d.rec.Title)

	hint := t.MutedText.Render("j/k scroll")
	if d.vp.TotalLineCount() <= d.vp.Height {
		hint = ""
	}
	closeBtn := t.Trigger.Render("[ " + modalCloseLabel + " ]")
	gap := w - lipgloss.Width(hint) - lipgloss.Width(closeBtn)
	if gap < 1 {
		gap = 1
	}
	footer := hint + strings.Repeat(" ", gap) + closeBtn

	return t.Modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		d.vp.View(),
		footer,
	))
}

// Place centers the modal in the given area.
func (d *DetailModal) Place(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.View())
}
