package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRun(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	interval := 500 * time.Millisecond

	tests := []struct {
		name string
		now  time.Time
		last time.Time
		want bool
	}{
		{"first search", base, time.Time{}, true},
		{"inside interval", base.Add(100 * time.Millisecond), base, false},
		{"just before", base.Add(499 * time.Millisecond), base, false},
		{"exactly interval", base.Add(interval), base, true},
		{"after interval", base.Add(2 * time.Second), base, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRun(tt.now, tt.last, interval))
		})
	}
}

func TestRemaining(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	interval := 500 * time.Millisecond

	assert.Equal(t, time.Duration(0), Remaining(base, time.Time{}, interval))
	assert.Equal(t, 400*time.Millisecond, Remaining(base.Add(100*time.Millisecond), base, interval))
	assert.Equal(t, time.Duration(0), Remaining(base.Add(time.Second), base, interval))
}
