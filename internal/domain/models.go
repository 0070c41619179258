package domain

// SearchResult is one matching line of one file
type SearchResult struct {
	Path    string // path as discovered (root-joined)
	Name    string // display name, relative to the search root
	Line    int    // 1-based line number
	Text    string // raw line text without the line terminator
	Score   int    // fuzzy relevance, higher is better
	Matched []int  // byte offsets in Text of matched query characters
}

// Limits bounds the work a single search may do
type Limits struct {
	MaxFiles        int // files opened per search
	MaxLinesPerFile int // matching lines collected per file
	MaxResults      int // matching lines collected overall
}

// Total returns the effective global result cap
func (l Limits) Total() int {
	if l.MaxResults > 0 && l.MaxResults < l.MaxFiles*l.MaxLinesPerFile {
		return l.MaxResults
	}
	return l.MaxFiles * l.MaxLinesPerFile
}

// ScanStats summarizes a finished directory traversal
type ScanStats struct {
	Files    int // regular files emitted
	Dirs     int // directories read
	Ignored  int // entries excluded by ignore rules or hidden filtering
	Skipped  int // entries skipped because of errors
	Canceled bool
}
