package search

// PathSet is the append-only set of discovered file paths, kept in
// discovery order
type PathSet struct {
	seen  map[string]struct{}
	order []string
}

// NewPathSet creates an empty set
func NewPathSet() *PathSet {
	return &PathSet{seen: make(map[string]struct{})}
}

// Add merges paths into the set and returns how many were new
func (s *PathSet) Add(paths ...string) int {
	added := 0
	for _, p := range paths {
		if _, ok := s.seen[p]; ok {
			continue
		}
		s.seen[p] = struct{}{}
		s.order = append(s.order, p)
		added++
	}
	return added
}

// Contains reports whether p was added
func (s *PathSet) Contains(p string) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of paths
func (s *PathSet) Len() int {
	return len(s.order)
}

// Paths returns a copy of the paths in discovery order
func (s *PathSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// view returns the backing slice capped at its length; callers must not modify it
func (s *PathSet) view() []string {
	return s.order[:len(s.order):len(s.order)]
}
