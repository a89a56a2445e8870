package ui

import (
	"strings"

	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/view"
)

// TriggerKind is what activating a trigger does.
type TriggerKind int

const (
	// TriggerDetail opens a DetailRecord in the overlay.
	TriggerDetail TriggerKind = iota
	// TriggerLink opens an external URL.
	TriggerLink
	// TriggerNavigate scrolls to another section.
	TriggerNavigate
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerDetail:
		return "detail"
	case TriggerLink:
		return "link"
	case TriggerNavigate:
		return "navigate"
	default:
		return "unknown"
	}
}

// Trigger is a focusable, activatable line of the page.
type Trigger struct {
	Kind    TriggerKind
	Label   string
	Row     int // absolute page row
	Section content.SectionID
	Detail  content.DetailRecord
	URL     string
	Target  content.SectionID
}

// sectionWriter accumulates the rows of one section and the triggers on them.
type sectionWriter struct {
	width    int
	lines    []string
	triggers []Trigger
}

func (w *sectionWriter) block(s string) {
	w.lines = append(w.lines, splitLines(s)...)
}

func (w *sectionWriter) blank() {
	w.lines = append(w.lines, "")
}

// trigger records t at the current row and writes its rendered line.
func (w *sectionWriter) trigger(t Trigger, rendered string) {
	t.Row = len(w.lines)
	w.triggers = append(w.triggers, t)
	w.block(rendered)
}

// pageLayout is the rendered page: rows, section anchors and triggers. It
// implements view.Layout.
type pageLayout struct {
	width    int
	lines    []string
	bounds   map[content.SectionID]view.SectionBounds
	order    []content.SectionID
	triggers []Trigger
}

// Bounds implements view.Layout.
func (l *pageLayout) Bounds(id content.SectionID) (view.SectionBounds, bool) {
	if l == nil {
		return view.SectionBounds{}, false
	}
	b, ok := l.bounds[id]
	return b, ok
}

// Height is the total number of rows.
func (l *pageLayout) Height() int {
	if l == nil {
		return 0
	}
	return len(l.lines)
}

// TriggerAt returns the index of the trigger on row, or -1.
func (l *pageLayout) TriggerAt(row int) int {
	for i, t := range l.triggers {
		if t.Row == row {
			return i
		}
	}
	return -1
}

// Content joins the rows, prefixing each with the focus gutter. focusRow is
// -1 when nothing is focused.
func (l *pageLayout) Content(theme Theme, focusRow int) string {
	var sb strings.Builder
	marker := theme.Focused.Render("▸ ")
	blank := strings.Repeat(" ", gutterWidth)
	for i, line := range l.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if i == focusRow {
			sb.WriteString(marker)
		} else {
			sb.WriteString(blank)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// pageWidth is the reading column for a terminal width.
func pageWidth(termWidth int) int {
	w := termWidth - gutterWidth - 1
	if w > MaxPageWidth {
		w = MaxPageWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// buildLayout renders every declared section in order. Sections are laid out
// back to back so their bounds tile the page; the footer follows the last
// section and belongs to none.
func buildLayout(site *content.Site, theme Theme, md *MarkdownRenderer, width int) *pageLayout {
	defer metrics.Timer(metrics.Layout)()

	l := &pageLayout{
		width:  width,
		bounds: make(map[content.SectionID]view.SectionBounds, len(site.Sections)),
	}
	for _, sec := range site.Sections {
		w := &sectionWriter{width: width}
		renderSection(w, site, sec, theme, md)
		w.blank()

		top := len(l.lines)
		l.bounds[sec.ID] = view.SectionBounds{ID: sec.ID, Top: top, Height: len(w.lines)}
		l.order = append(l.order, sec.ID)
		for _, t := range w.triggers {
			t.Row += top
			t.Section = sec.ID
			l.triggers = append(l.triggers, t)
		}
		l.lines = append(l.lines, w.lines...)
	}

	fw := &sectionWriter{width: width}
	renderFooter(fw, site, theme)
	l.lines = append(l.lines, fw.lines...)

	debug.Log("layout: width=%d rows=%d sections=%d triggers=%d", width, len(l.lines), len(l.order), len(l.triggers))
	return l
}
