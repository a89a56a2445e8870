package view

import (
	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
)

// ScrollLock suspends background scrolling while held.
type ScrollLock interface {
	Lock()
	Unlock()
}

// Overlay exposes one reusable "show details" capability for any content
// record. At most one record is open; the scroll lock is acquired on the
// closed->open transition and released on open->closed, exactly once each.
type Overlay struct {
	store *Store
	lock  ScrollLock
	held  bool
}

// NewOverlay creates an overlay controller. lock may be nil.
func NewOverlay(store *Store, lock ScrollLock) *Overlay {
	return &Overlay{store: store, lock: lock}
}

// Open shows rec, replacing any record already open. A record with no
// sections is valid and renders its intro only.
func (o *Overlay) Open(rec content.DetailRecord) {
	norm := rec.Normalized()
	if !o.held {
		o.held = true
		if o.lock != nil {
			o.lock.Lock()
		}
	}
	debug.Log("overlay: open %q (%d sections)", norm.Title, len(norm.Sections))
	o.store.setDetail(&norm)
}

// Close hides the open record. Closing when nothing is open is a no-op.
func (o *Overlay) Close() {
	if !o.IsOpen() {
		return
	}
	o.store.setDetail(nil)
	if o.held {
		o.held = false
		if o.lock != nil {
			o.lock.Unlock()
		}
	}
	debug.Log("overlay: closed")
}

// IsOpen reports whether a record is open.
func (o *Overlay) IsOpen() bool {
	return o.store.state.OpenDetail != nil
}

// Current returns the open record, if any.
func (o *Overlay) Current() (content.DetailRecord, bool) {
	if o.store.state.OpenDetail == nil {
		return content.DetailRecord{}, false
	}
	return *o.store.state.OpenDetail, true
}

// Gate is a boolean ScrollLock the page shell consults before scrolling.
type Gate struct {
	locked bool
}

// Lock implements ScrollLock.
func (g *Gate) Lock() { g.locked = true }

// Unlock implements ScrollLock.
func (g *Gate) Unlock() { g.locked = false }

// Locked reports whether background scrolling is suspended.
func (g *Gate) Locked() bool { return g.locked }
