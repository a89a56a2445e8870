package view

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/folio/pkg/content"
)

// genLayout draws contiguous, non-overlapping section intervals starting at 0.
func genLayout(t *rapid.T) ([]SectionBounds, fakeLayout) {
	ids := []content.SectionID{secA, secB, secC}
	var bounds []SectionBounds
	layout := fakeLayout{}
	top := 0
	for _, id := range ids {
		h := rapid.IntRange(1, 300).Draw(t, "height")
		b := SectionBounds{ID: id, Top: top, Height: h}
		bounds = append(bounds, b)
		layout[id] = b
		top += h
	}
	return bounds, layout
}

func TestProperty_RecomputeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bounds, _ := genLayout(t)
		y := rapid.IntRange(-500, 1500).Draw(t, "scrollY")
		header := rapid.IntRange(0, 200).Draw(t, "header")
		prev := rapid.SampledFrom([]content.SectionID{secA, secB, secC}).Draw(t, "prev")

		first := Recompute(bounds, y, header, prev)
		second := Recompute(bounds, y, header, first)
		if first != second {
			t.Fatalf("not idempotent: %q then %q", first, second)
		}
	})
}

func TestProperty_RecomputeMatchesContainingInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bounds, _ := genLayout(t)
		y := rapid.IntRange(-500, 1500).Draw(t, "scrollY")
		header := rapid.IntRange(0, 200).Draw(t, "header")

		got := Recompute(bounds, y, header, "sentinel")
		probe := y + header
		end := bounds[len(bounds)-1].Top + bounds[len(bounds)-1].Height
		if probe < 0 || probe >= end {
			if got != "sentinel" {
				t.Fatalf("probe %d outside document should keep previous, got %q", probe, got)
			}
			return
		}
		for _, b := range bounds {
			if b.ID == got && !b.Contains(probe) {
				t.Fatalf("section %q %+v does not contain probe %d", got, b, probe)
			}
		}
	})
}

func TestProperty_SpyRecomputeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_, layout := genLayout(t)
		sc := &fakeScroller{maxOffset: 1000}
		clock := &fakeClock{t: time.Unix(0, 0)}
		store := NewStore(secA)
		spy := NewScrollSpy(store, []content.SectionID{secA, secB, secC}, layout, sc, WithClock(clock.Now))

		if rapid.Bool().Draw(t, "navigate first") {
			spy.Navigate(rapid.SampledFrom([]content.SectionID{secA, secB, secC}).Draw(t, "nav"))
		}
		sc.offset = rapid.IntRange(-200, 1200).Draw(t, "offset")

		spy.Recompute()
		first := store.State().ActiveSection
		spy.Recompute()
		if second := store.State().ActiveSection; first != second {
			t.Fatalf("spy recompute not idempotent at %d: %q then %q", sc.offset, first, second)
		}
	})
}

func TestProperty_NavigateWinsWithinTick(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_, layout := genLayout(t)
		sc := &fakeScroller{maxOffset: 10000}
		clock := &fakeClock{t: time.Unix(0, 0)}
		store := NewStore(secA)
		spy := NewScrollSpy(store, []content.SectionID{secA, secB, secC}, layout, sc, WithClock(clock.Now))

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom([]content.SectionID{secA, secB, secC, "gallery"}).Draw(t, "id")
			spy.Navigate(id)

			// Scroll events fired in the same tick, at arbitrary stale offsets.
			n := rapid.IntRange(0, 5).Draw(t, "events")
			for j := 0; j < n; j++ {
				spy.RecomputeAt(rapid.IntRange(-200, 1200).Draw(t, "stale"))
			}

			if !id.IsKnown() {
				continue
			}
			if got := store.State().ActiveSection; got != id {
				t.Fatalf("after Navigate(%q) and %d stale events, active = %q", id, n, got)
			}
		}
	})
}

func TestProperty_OverlayLockPairing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewStore(secA)
		lock := &countingLock{}
		o := NewOverlay(store, lock)

		ops := rapid.SliceOfN(rapid.Bool(), 1, 50).Draw(t, "ops")
		transitionsOpen, transitionsClosed := 0, 0
		for i, open := range ops {
			wasOpen := o.IsOpen()
			if open {
				o.Open(record(string(rune('A'+i%26)), i%4))
				if !wasOpen {
					transitionsOpen++
				}
			} else {
				o.Close()
				if wasOpen {
					transitionsClosed++
				}
			}
			if lock.locks-lock.unlocks != boolToInt(o.IsOpen()) {
				t.Fatalf("lock imbalance after op %d: locks=%d unlocks=%d open=%v",
					i, lock.locks, lock.unlocks, o.IsOpen())
			}
		}
		if lock.locks != transitionsOpen || lock.unlocks != transitionsClosed {
			t.Fatalf("lock calls %d/%d, transitions %d/%d",
				lock.locks, lock.unlocks, transitionsOpen, transitionsClosed)
		}
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
