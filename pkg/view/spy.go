package view

import (
	"time"

	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
)

// DefaultHeaderOffset compensates for a sticky header in layout units. The
// reference page uses 150px; the terminal shell passes its own value in rows.
const DefaultHeaderOffset = 150

// DefaultSettleWindow is how long a navigation wins over recomputes fired
// while its smooth scroll is still in flight.
const DefaultSettleWindow = 600 * time.Millisecond

// SectionBounds is the vertical extent of a rendered section.
type SectionBounds struct {
	ID     content.SectionID
	Top    int
	Height int
}

// Contains reports whether y falls in [Top, Top+Height).
func (b SectionBounds) Contains(y int) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// Recompute returns the active section for a scroll offset. The probe is
// scrollY+headerOffset; the first bounds (in the given order) containing the
// probe wins. When nothing contains it, previous is returned unchanged.
func Recompute(bounds []SectionBounds, scrollY, headerOffset int, previous content.SectionID) content.SectionID {
	probe := scrollY + headerOffset
	for _, b := range bounds {
		if b.Contains(probe) {
			return b.ID
		}
	}
	return previous
}

// Layout looks up the rendered anchor of a section.
type Layout interface {
	Bounds(id content.SectionID) (SectionBounds, bool)
}

// Scroller is the page's scroll surface. ScrollTo starts a fire-and-forget
// smooth scroll and returns the offset it will come to rest at (after
// clamping to the scrollable range).
type Scroller interface {
	Offset() int
	ScrollTo(y int) int
}

// SpyOption configures a ScrollSpy.
type SpyOption func(*ScrollSpy)

// WithHeaderOffset sets the sticky-header compensation.
func WithHeaderOffset(n int) SpyOption {
	return func(s *ScrollSpy) {
		s.headerOffset = n
	}
}

// WithSettleWindow sets how long a navigation suppresses in-flight recomputes.
func WithSettleWindow(d time.Duration) SpyOption {
	return func(s *ScrollSpy) {
		s.settleWindow = d
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) SpyOption {
	return func(s *ScrollSpy) {
		s.now = now
	}
}

// pendingNav is a navigation whose smooth scroll has not settled yet.
type pendingNav struct {
	section  content.SectionID
	anchor   int
	target   int
	deadline time.Time
}

// ScrollSpy keeps State.ActiveSection consistent with the scroll offset and
// implements directed navigation.
type ScrollSpy struct {
	store        *Store
	sections     []content.SectionID
	layout       Layout
	scroller     Scroller
	headerOffset int
	settleWindow time.Duration
	now          func() time.Time
	pending      *pendingNav
}

// NewScrollSpy creates a spy over sections in declared order. layout and
// scroller may be nil until the page is laid out; the spy is inert until
// then.
func NewScrollSpy(store *Store, sections []content.SectionID, layout Layout, scroller Scroller, opts ...SpyOption) *ScrollSpy {
	s := &ScrollSpy{
		store:        store,
		sections:     append([]content.SectionID(nil), sections...),
		layout:       layout,
		scroller:     scroller,
		headerOffset: DefaultHeaderOffset,
		settleWindow: DefaultSettleWindow,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLayout swaps the anchor source after a relayout. A pending navigation
// whose anchor moved no longer holds once its settle window ends.
func (s *ScrollSpy) SetLayout(l Layout) {
	s.layout = l
	p := s.pending
	if p == nil {
		return
	}
	if l == nil {
		s.pending = nil
		return
	}
	if b, ok := l.Bounds(p.section); !ok || b.Top != p.anchor {
		p.target = -1
	}
}

// SetSections replaces the declared section order, e.g. after a content
// reload.
func (s *ScrollSpy) SetSections(sections []content.SectionID) {
	s.sections = append([]content.SectionID(nil), sections...)
	s.pending = nil
}

// HeaderOffset returns the configured header compensation.
func (s *ScrollSpy) HeaderOffset() int {
	return s.headerOffset
}

// Settling reports whether a navigation is still holding the active section.
// SettleWindow tells callers when to schedule a follow-up Recompute.
func (s *ScrollSpy) Settling() bool {
	return s.pending != nil
}

// SettleWindow returns the configured settle window.
func (s *ScrollSpy) SettleWindow() time.Duration {
	return s.settleWindow
}

// Navigate smooth-scrolls to the section and marks it active right away.
// Unknown sections and sections without an anchor are ignored.
func (s *ScrollSpy) Navigate(id content.SectionID) {
	if !s.declared(id) {
		debug.Log("spy: navigate to undeclared section %q ignored", id)
		return
	}
	if s.layout == nil || s.scroller == nil {
		debug.Log("spy: navigate to %q before layout ignored", id)
		return
	}
	b, ok := s.layout.Bounds(id)
	if !ok {
		debug.Log("spy: no anchor for %q", id)
		return
	}

	target := s.scroller.ScrollTo(b.Top)
	s.pending = &pendingNav{
		section:  id,
		anchor:   b.Top,
		target:   target,
		deadline: s.now().Add(s.settleWindow),
	}
	s.store.setActive(id)
	s.store.CollapseMenu()
}

// Recompute derives the active section from the scroller's current offset.
func (s *ScrollSpy) Recompute() {
	if s.scroller == nil {
		return
	}
	s.RecomputeAt(s.scroller.Offset())
}

// RecomputeAt derives the active section for an explicit offset.
//
// Within the settle window after a navigation every recompute is treated as
// the animation in flight and ignored. After the window, resting on the
// navigation target keeps the navigated section; any other offset hands
// control back to the spy.
func (s *ScrollSpy) RecomputeAt(scrollY int) {
	defer metrics.Timer(metrics.SpyCompute)()

	if p := s.pending; p != nil {
		if s.now().Before(p.deadline) || scrollY == p.target {
			return
		}
		s.pending = nil
	}

	prev := s.store.State().ActiveSection
	next := Recompute(s.bounds(), scrollY, s.headerOffset, prev)
	debug.LogIf(next != prev, "spy: offset %d -> %s", scrollY, next)
	s.store.setActive(next)
}

// bounds collects anchors in declared order, skipping missing ones.
func (s *ScrollSpy) bounds() []SectionBounds {
	if s.layout == nil {
		return nil
	}
	out := make([]SectionBounds, 0, len(s.sections))
	for _, id := range s.sections {
		b, ok := s.layout.Bounds(id)
		if !ok {
			continue
		}
		b.ID = id
		out = append(out, b)
	}
	return out
}

func (s *ScrollSpy) declared(id content.SectionID) bool {
	for _, sec := range s.sections {
		if sec == id {
			return true
		}
	}
	return false
}
