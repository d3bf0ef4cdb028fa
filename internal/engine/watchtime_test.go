package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchSeconds(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		pct      int
		min      int
		max      int
		want     int
	}{
		{name: "typical case", duration: 600, pct: 70, min: 60, max: 600, want: 420},
		{name: "short video never exceeds its own length", duration: 50, pct: 70, min: 60, max: 600, want: 50},
		{name: "capped by max", duration: 3600, pct: 100, min: 60, max: 600, want: 600},
		{name: "floored by min", duration: 600, pct: 10, min: 120, max: 600, want: 120},
		{name: "fallback duration for live", duration: FallbackDurationSeconds, pct: 70, min: 60, max: 600, want: 210},
		{name: "fractional duration floors", duration: 100.9, pct: 50, min: 10, max: 600, want: 50},
		{name: "tiny video still at least one second", duration: 0.5, pct: 10, min: 10, max: 60, want: 1},
		{name: "inverted bounds are swapped", duration: 600, pct: 70, min: 600, max: 60, want: 420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WatchSeconds(tt.duration, tt.pct, tt.min, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}
