package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitOrder(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		rotate    bool
		lastIndex int
		want      []int
	}{
		{name: "rotation off", n: 3, rotate: false, lastIndex: 1, want: []int{0, 1, 2}},
		{name: "no previous run", n: 3, rotate: true, lastIndex: -1, want: []int{0, 1, 2}},
		{name: "resume after first", n: 3, rotate: true, lastIndex: 0, want: []int{1, 2, 0}},
		{name: "resume after middle", n: 3, rotate: true, lastIndex: 1, want: []int{2, 0, 1}},
		{name: "resume after last wraps", n: 3, rotate: true, lastIndex: 2, want: []int{0, 1, 2}},
		{name: "single channel", n: 1, rotate: true, lastIndex: 0, want: []int{0}},
		{name: "empty list", n: 0, rotate: true, lastIndex: -1, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisitOrder(tt.n, tt.rotate, tt.lastIndex)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisitOrderIsPermutation(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for lastIndex := -1; lastIndex < n; lastIndex++ {
			got := VisitOrder(n, true, lastIndex)
			require.Len(t, got, n)

			seen := make(map[int]bool, n)
			for _, idx := range got {
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, n)
				require.False(t, seen[idx], "n=%d lastIndex=%d: duplicate index %d", n, lastIndex, idx)
				seen[idx] = true
			}
		}
	}
}

func TestVisitOrderDeterministic(t *testing.T) {
	first := VisitOrder(5, true, 2)
	second := VisitOrder(5, true, 2)
	assert.Equal(t, first, second)
}
