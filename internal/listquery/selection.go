package listquery

import (
	"sort"
	"sync"
)

// Selection tracks the ids a user has marked for a bulk action. It is not
// cleared when the page or filters change, so a bulk-delete set can be
// accumulated across pages; a successful bulk mutation clears it.
type Selection struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: map[int64]struct{}{}}
}

// ToggleOne adds id when absent, removes it when present.
func (s *Selection) ToggleOne(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll replaces the selection wholesale.
func (s *Selection) SelectAll(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[int64]struct{}{}
}

func (s *Selection) Has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsAllSelected reports whether the selection equals the full, non-empty set
// of current-page ids.
func (s *Selection) IsAllSelected(pageIDs []int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(pageIDs) == 0 || len(s.ids) != len(pageIDs) {
		return false
	}
	for _, id := range pageIDs {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// IsIndeterminate reports whether some but not all current-page ids are
// selected.
func (s *Selection) IsIndeterminate(pageIDs []int64) bool {
	s.mu.Lock()
	selected := 0
	for _, id := range pageIDs {
		if _, ok := s.ids[id]; ok {
			selected++
		}
	}
	s.mu.Unlock()
	return selected > 0 && selected < len(pageIDs)
}
