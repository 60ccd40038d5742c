package domain

import "sort"

// AdminSet is the immutable set of operator chat IDs allowed to issue
// commands and receive notifications.
type AdminSet struct {
	ids   map[int64]struct{}
	order []int64
}

// NewAdminSet builds an AdminSet. Duplicates are collapsed; the
// configured order is kept for broadcast fan-out.
func NewAdminSet(ids []int64) AdminSet {
	s := AdminSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s
}

// Contains reports whether chatID is an authorized operator
func (s AdminSet) Contains(chatID int64) bool {
	_, ok := s.ids[chatID]
	return ok
}

// IDs returns a copy of the admin IDs in configured order
func (s AdminSet) IDs() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of admins
func (s AdminSet) Len() int {
	return len(s.order)
}

// Sorted returns the admin IDs in ascending order (for display)
func (s AdminSet) Sorted() []int64 {
	out := s.IDs()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
