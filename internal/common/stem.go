package common

import "strconv"

// NewStem creates a new Stem instance with the provided stem and namespace.
// The nil namespace is treated as a free namespace, meaning all names are available.
func NewStem(stem string, namespace map[string]struct{}) *Stem {
	return &Stem{
		taken: namespace,
		stem:  stem,
	}
}

// Stem allocates names derived from a base name that do not collide with a namespace.
type Stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// Claim returns the bare stem if it is still free, otherwise the next numbered name.
func (s *Stem) Claim() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	if _, ok := s.taken[s.stem]; !ok {
		s.taken[s.stem] = struct{}{}
		return s.stem
	}

	return s.Next()
}

// Next returns the next free numbered name: stem1, stem2, ...
func (s *Stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
