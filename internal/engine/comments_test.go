package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextComment(t *testing.T) {
	pool := []string{"great video", "love this channel", "keep it up"}

	t.Run("full cycle visits each comment once in order", func(t *testing.T) {
		lastIndex := -1
		for round := 0; round < 2; round++ {
			for i := range pool {
				pick, err := NextComment(pool, lastIndex)
				require.NoError(t, err)
				assert.Equal(t, pool[i], pick.Comment)
				assert.Equal(t, i, pick.Index)
				assert.True(t, pick.Rotated)
				lastIndex = pick.Index
			}
		}
	})

	t.Run("wraps from last to first", func(t *testing.T) {
		pick, err := NextComment(pool, len(pool)-1)
		require.NoError(t, err)
		assert.Equal(t, 0, pick.Index)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := NextComment(nil, -1)
		assert.ErrorIs(t, err, ErrEmptyCommentPool)
	})
}

func TestPickRandomComment(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		pick, err := PickRandomComment(pool, rng)
		require.NoError(t, err)
		assert.False(t, pick.Rotated)
		require.GreaterOrEqual(t, pick.Index, 0)
		require.Less(t, pick.Index, len(pool))
		assert.Equal(t, pool[pick.Index], pick.Comment)
	}

	_, err := PickRandomComment(nil, rng)
	assert.ErrorIs(t, err, ErrEmptyCommentPool)
}
