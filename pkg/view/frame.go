package view

// FrameBatcher coalesces scroll events so the spy recomputes at most once per
// frame. Requests that arrive after a flush always schedule a new frame, so
// the resting offset is recomputed once scrolling stops.
type FrameBatcher struct {
	dirty     bool
	scheduled bool
}

// Request marks a recompute as due and reports whether the caller must
// schedule a frame.
func (f *FrameBatcher) Request() bool {
	f.dirty = true
	if f.scheduled {
		return false
	}
	f.scheduled = true
	return true
}

// Flush runs when a scheduled frame fires and reports whether a recompute
// is due.
func (f *FrameBatcher) Flush() bool {
	f.scheduled = false
	due := f.dirty
	f.dirty = false
	return due
}

// Pending reports whether a frame is scheduled.
func (f *FrameBatcher) Pending() bool {
	return f.scheduled
}
