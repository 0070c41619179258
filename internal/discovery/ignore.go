package discovery

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// rule is a compiled ignore file anchored at the directory that contains it
type rule struct {
	base string
	ign  *ignore.GitIgnore
	// neg holds the negated patterns with their '!' removed. The library
	// only lets a negation cancel an earlier match from the same file.
	neg *ignore.GitIgnore
}

// decide reports whether r ignores rel, and whether r has an opinion at all
func (r rule) decide(rel string) (ignored, decided bool) {
	matched, pat := r.ign.MatchesPathHow(rel)
	if matched {
		return true, true
	}
	if pat != nil {
		return false, true
	}
	if r.neg != nil && r.neg.MatchesPath(rel) {
		return false, true
	}
	return false, false
}

// ruleSet is the chain of rules that applies to one directory, root first.
// Children extend it copy-on-write so sibling directories never see each
// other's rules.
type ruleSet []rule

func (rs ruleSet) with(r rule) ruleSet {
	next := make(ruleSet, len(rs), len(rs)+1)
	copy(next, rs)
	return append(next, r)
}

// ignored reports whether path (a directory if isDir) is excluded. The
// deepest rule with an opinion wins, so a nested negation re-includes
// what an outer file ignored.
func (rs ruleSet) ignored(path string, isDir bool) bool {
	for i := len(rs) - 1; i >= 0; i-- {
		r := rs[i]
		rel, err := filepath.Rel(r.base, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if ign, ok := r.decide(rel); ok {
			return ign
		}
	}
	return false
}

// compileLines builds a rule from gitignore-syntax lines; it returns false
// when no effective pattern remains.
func compileLines(base string, lines []string) (rule, bool) {
	var kept, negated []string
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, line)
		if strings.HasPrefix(trimmed, "!") && len(trimmed) > 1 {
			negated = append(negated, trimmed[1:])
		}
	}
	if len(kept) == 0 {
		return rule{}, false
	}
	r := rule{base: base, ign: ignore.CompileIgnoreLines(kept...)}
	if len(negated) > 0 {
		r.neg = ignore.CompileIgnoreLines(negated...)
	}
	return r, true
}

// loadRuleFile reads an ignore file; a missing file is not an error
func loadRuleFile(base, path string) (rule, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return rule{}, false, nil
	}
	if err != nil {
		return rule{}, false, err
	}
	r, ok := compileLines(base, strings.Split(string(data), "\n"))
	return r, ok, nil
}
