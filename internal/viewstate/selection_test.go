package viewstate

import (
	"testing"

	"github.com/nordvik/glance/internal/recall"
)

// countingLock records Acquire/Release calls for balance checks.
type countingLock struct {
	acquires int
	releases int
}

func (l *countingLock) Acquire() { l.acquires++ }
func (l *countingLock) Release() { l.releases++ }

func (l *countingLock) held() int { return l.acquires - l.releases }

func TestSelectionLifecycle(t *testing.T) {
	lock := &countingLock{}
	s := NewSelection(lock)

	if s.Visible() || s.Selected() != nil {
		t.Error("fresh selection should be hidden")
	}

	e := recall.Entry{ID: 7, App: "Slack"}
	s.Select(e)
	if !s.Visible() || s.Selected() == nil || s.Selected().ID != 7 {
		t.Errorf("selected = %+v", s.Selected())
	}
	if lock.held() != 1 {
		t.Errorf("lock held = %d, want 1", lock.held())
	}

	s.Dismiss()
	if s.Visible() || s.Selected() != nil {
		t.Error("dismiss should hide the modal")
	}
	if lock.held() != 0 {
		t.Errorf("lock held after dismiss = %d, want 0", lock.held())
	}
}

func TestSelectionSwapDoesNotReacquire(t *testing.T) {
	lock := &countingLock{}
	s := NewSelection(lock)

	s.Select(recall.Entry{ID: 1})
	s.Select(recall.Entry{ID: 2})
	if s.Selected().ID != 2 {
		t.Errorf("selected = %+v", s.Selected())
	}
	if lock.acquires != 1 {
		t.Errorf("acquires = %d, want 1", lock.acquires)
	}

	s.Dismiss()
	if lock.held() != 0 {
		t.Errorf("lock held = %d, want 0", lock.held())
	}
}

func TestSelectionDismissIdempotent(t *testing.T) {
	lock := &countingLock{}
	s := NewSelection(lock)

	// Dismiss when nothing is selected: no release.
	s.Dismiss()
	if lock.releases != 0 {
		t.Errorf("releases = %d, want 0", lock.releases)
	}

	// Every exit path may call Dismiss; only the first releases.
	s.Select(recall.Entry{ID: 1})
	s.Dismiss()
	s.Dismiss()
	s.Dismiss()
	if lock.releases != 1 || lock.held() != 0 {
		t.Errorf("releases = %d held = %d", lock.releases, lock.held())
	}
}

func TestSelectionRepeatedCyclesStayBalanced(t *testing.T) {
	lock := &countingLock{}
	s := NewSelection(lock)

	for i := 0; i < 5; i++ {
		s.Select(recall.Entry{ID: int64(i)})
		s.Dismiss()
	}
	if lock.acquires != 5 || lock.releases != 5 {
		t.Errorf("acquires = %d releases = %d, want 5/5", lock.acquires, lock.releases)
	}
}

func TestSelectionNilLock(t *testing.T) {
	s := NewSelection(nil)
	s.Select(recall.Entry{ID: 1})
	s.Dismiss() // must not panic
}
