package search

import "time"

// ShouldRun reports whether a search may run at now given the completion
// time of the previous one. A zero last always runs.
func ShouldRun(now, last time.Time, interval time.Duration) bool {
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= interval
}

// Remaining returns how long until ShouldRun turns true, zero if it already is
func Remaining(now, last time.Time, interval time.Duration) time.Duration {
	if ShouldRun(now, last, interval) {
		return 0
	}
	return interval - now.Sub(last)
}
