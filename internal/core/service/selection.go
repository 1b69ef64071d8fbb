package service

import "sync"

// Selection tracks the single focused record of one list screen and
// whether its detail overlay is showing. Each screen owns its own
// instance.
type Selection struct {
	mu       sync.Mutex
	selected string
	visible  bool
}

// Select focuses id and opens the overlay.
func (s *Selection) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
	s.visible = true
}

// Deselect clears the focus and closes the overlay. Also used as the
// reset on data reload and on loss of authentication.
func (s *Selection) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.visible = false
}

// Current returns the focused id and overlay visibility.
func (s *Selection) Current() (id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.visible
}

// Sync re-validates the selection against a reloaded record set. When
// the focused id no longer exists the overlay is forced closed rather
// than left pointing at stale data.
func (s *Selection) Sync(exists func(id string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return
	}
	if !exists(s.selected) {
		s.selected = ""
		s.visible = false
	}
}
