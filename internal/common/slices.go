package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// FirstOr returns the first element of the slice, or fallback if empty.
func FirstOr[S ~[]E, E any](s S, fallback E) E {
	if v, ok := First(s); ok {
		return v
	}

	return fallback
}

// Set is a string set that remembers insertion order.
type Set struct {
	order []string
	seen  map[string]struct{}
}

// Add inserts name and reports whether it was not present before.
func (s *Set) Add(name string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	if _, ok := s.seen[name]; ok {
		return false
	}

	s.seen[name] = struct{}{}
	s.order = append(s.order, name)

	return true
}

// Has reports whether name was added.
func (s *Set) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.order)
}

// At returns the i-th element in insertion order.
func (s *Set) At(i int) string {
	return s.order[i]
}

// Values returns a copy of the elements in insertion order.
func (s *Set) Values() []string {
	return append([]string(nil), s.order...)
}
