package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// pageScroller adapts the page viewport to view.Scroller. With smooth
// scrolling on, ScrollTo only sets a target and the model steps toward it
// on animation ticks.
type pageScroller struct {
	vp        viewport.Model
	smooth    bool
	target    int
	animating bool
	gen       int
}

func newPageScroller(width, height int, smooth bool) *pageScroller {
	return &pageScroller{vp: viewport.New(width, height), smooth: smooth}
}

// Offset implements view.Scroller.
func (s *pageScroller) Offset() int {
	return s.vp.YOffset
}

func (s *pageScroller) maxOffset() int {
	m := s.vp.TotalLineCount() - s.vp.Height
	if m < 0 {
		return 0
	}
	return m
}

// ScrollTo implements view.Scroller and returns the clamped resting offset.
func (s *pageScroller) ScrollTo(y int) int {
	y = clamp(y, 0, s.maxOffset())
	if !s.smooth {
		s.stop()
		s.vp.SetYOffset(y)
		return y
	}
	s.target = y
	s.animating = s.vp.YOffset != y
	s.gen++
	return y
}

// stop abandons an animation in flight; reader input always wins.
func (s *pageScroller) stop() {
	if s.animating {
		s.animating = false
		s.gen++
	}
}

// step moves one frame toward the target, easing out. It reports whether
// another frame is needed.
func (s *pageScroller) step() bool {
	if !s.animating {
		return false
	}
	cur := s.vp.YOffset
	d := s.target - cur
	move := d / 3
	if move == 0 {
		move = d
	}
	s.vp.SetYOffset(cur + move)
	if s.vp.YOffset == s.target || s.vp.YOffset == cur {
		s.animating = false
		return false
	}
	return true
}

// scrollBy moves by n rows (negative is up) and reports whether the offset
// changed.
func (s *pageScroller) scrollBy(n int) bool {
	s.stop()
	before := s.vp.YOffset
	s.vp.SetYOffset(clamp(before+n, 0, s.maxOffset()))
	return s.vp.YOffset != before
}

// jump moves to y without animation.
func (s *pageScroller) jump(y int) bool {
	s.stop()
	before := s.vp.YOffset
	s.vp.SetYOffset(clamp(y, 0, s.maxOffset()))
	return s.vp.YOffset != before
}

// Animating reports whether a smooth scroll is in flight.
func (s *pageScroller) Animating() bool {
	return s.animating
}

type scrollAnimMsg struct{ gen int }

func (s *pageScroller) animCmd(interval time.Duration) tea.Cmd {
	gen := s.gen
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return scrollAnimMsg{gen: gen}
	})
}
