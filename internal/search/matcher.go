package search

import (
	"github.com/sahilm/fuzzy"
)

// Matcher scores lines against one query. A line matches when every query
// character appears in it in order, ignoring case.
type Matcher struct {
	query string
}

// NewMatcher creates a matcher for query
func NewMatcher(query string) Matcher {
	return Matcher{query: query}
}

// Query returns the pattern being matched
func (m Matcher) Query() string {
	return m.query
}

// Match scores line. The empty query matches everything with score 0.
// matched holds the byte offsets of the matched characters in line.
func (m Matcher) Match(line string) (score int, matched []int, ok bool) {
	if m.query == "" {
		return 0, nil, true
	}
	found := fuzzy.Find(m.query, []string{line})
	if len(found) == 0 {
		return 0, nil, false
	}
	return found[0].Score, found[0].MatchedIndexes, true
}
