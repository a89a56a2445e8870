package ui

import (
	"strings"
	"testing"
)

func newFilledScroller(rows, height int, smooth bool) *pageScroller {
	s := newPageScroller(80, height, smooth)
	s.vp.SetContent(strings.Repeat("line\n", rows-1) + "line")
	return s
}

func TestPageScroller_ClampsTarget(t *testing.T) {
	s := newFilledScroller(100, 20, false)

	if got := s.ScrollTo(500); got != 80 {
		t.Errorf("ScrollTo(500) = %d, want 80", got)
	}
	if s.Offset() != 80 {
		t.Errorf("offset = %d, want 80", s.Offset())
	}
	if got := s.ScrollTo(-3); got != 0 {
		t.Errorf("ScrollTo(-3) = %d, want 0", got)
	}
}

func TestPageScroller_SmoothConverges(t *testing.T) {
	s := newFilledScroller(200, 20, true)

	target := s.ScrollTo(90)
	if s.Offset() != 0 || !s.Animating() {
		t.Fatal("smooth ScrollTo should only start an animation")
	}

	last := s.Offset()
	for i := 0; i < 100 && s.step(); i++ {
		if s.Offset() <= last {
			t.Fatalf("animation did not advance at step %d", i)
		}
		last = s.Offset()
	}
	if s.Offset() != target || s.Animating() {
		t.Errorf("animation ended at %d (animating=%v), want %d", s.Offset(), s.Animating(), target)
	}
}

func TestPageScroller_InputCancelsAnimation(t *testing.T) {
	s := newFilledScroller(200, 20, true)
	s.ScrollTo(100)
	gen := s.gen

	if !s.scrollBy(5) {
		t.Fatal("scrollBy should move the page")
	}
	if s.Animating() || s.gen == gen {
		t.Error("reader scroll should cancel the animation")
	}
	if s.step() {
		t.Error("step after cancel should be a no-op")
	}
}

func TestPageScroller_ShortPage(t *testing.T) {
	s := newFilledScroller(5, 20, false)
	if s.maxOffset() != 0 {
		t.Errorf("maxOffset = %d, want 0", s.maxOffset())
	}
	if s.scrollBy(3) {
		t.Error("a page shorter than the viewport cannot scroll")
	}
}
