package viewstate

import "github.com/nordvik/glance/internal/recall"

// ScrollLock is the capability a host view injects to suppress background
// scrolling while the detail modal is open. Acquire/Release calls are
// strictly paired: the selection acquires once when the modal opens and
// releases exactly once on any exit path, including teardown.
type ScrollLock interface {
	Acquire()
	Release()
}

// Selection tracks which single entry, if any, is focused for detail
// viewing. The modal is visible iff an entry is selected.
type Selection struct {
	lock     ScrollLock
	selected *recall.Entry
}

// NewSelection creates a selection with an optional scroll lock.
func NewSelection(lock ScrollLock) *Selection {
	return &Selection{lock: lock}
}

// Select focuses e and opens the modal. Selecting while already open swaps
// the focused entry without re-acquiring the lock.
func (s *Selection) Select(e recall.Entry) {
	if s.selected == nil && s.lock != nil {
		s.lock.Acquire()
	}
	s.selected = &e
}

// Dismiss closes the modal and releases the scroll lock. Dismissing an
// already-closed selection is a no-op, so every exit path (close key,
// backdrop, escape, teardown) can call it unconditionally.
func (s *Selection) Dismiss() {
	if s.selected == nil {
		return
	}
	s.selected = nil
	if s.lock != nil {
		s.lock.Release()
	}
}

// Visible reports whether the modal should be shown.
func (s *Selection) Visible() bool { return s.selected != nil }

// Selected returns the focused entry, or nil when the modal is closed.
func (s *Selection) Selected() *recall.Entry { return s.selected }
