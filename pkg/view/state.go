// Package view holds folio's view controller: the explicit ViewState store,
// the ScrollSpy that derives the active section from the scroll offset, and
// the Overlay that manages the single detail record and its scroll lock.
//
// Everything here runs on the UI event loop only. Types carry no locks and
// never return errors: a missing anchor or an absent scroller degrades to a
// no-op.
package view

import "github.com/vanderheijden86/folio/pkg/content"

// State is the process-wide view state of one page session.
type State struct {
	ActiveSection content.SectionID
	OpenDetail    *content.DetailRecord
	MenuExpanded  bool
}

// HasDetail reports whether a detail record is open.
func (s State) HasDetail() bool {
	return s.OpenDetail != nil
}

type subscriber struct {
	id int
	fn func(State)
}

// Store owns the State. Only ScrollSpy, Overlay and the menu toggle mutate
// it; everyone else reads through State or Subscribe.
type Store struct {
	state  State
	subs   []subscriber
	nextID int
}

// NewStore creates a store whose active section is first.
func NewStore(first content.SectionID) *Store {
	return &Store{state: State{ActiveSection: first}}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	out := s.state
	if s.state.OpenDetail != nil {
		rec := *s.state.OpenDetail
		out.OpenDetail = &rec
	}
	return out
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// ToggleMenu flips the small-viewport navigation menu.
func (s *Store) ToggleMenu() {
	s.state.MenuExpanded = !s.state.MenuExpanded
	s.notify()
}

// CollapseMenu closes the navigation menu if it is open.
func (s *Store) CollapseMenu() {
	if !s.state.MenuExpanded {
		return
	}
	s.state.MenuExpanded = false
	s.notify()
}

func (s *Store) setActive(id content.SectionID) {
	if s.state.ActiveSection == id {
		return
	}
	s.state.ActiveSection = id
	s.notify()
}

// setDetail replaces the open record in one step; nil closes it.
func (s *Store) setDetail(rec *content.DetailRecord) {
	if rec == nil && s.state.OpenDetail == nil {
		return
	}
	s.state.OpenDetail = rec
	s.notify()
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.State()
	// Copy so a subscriber may unsubscribe while being notified.
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(snap)
	}
}
