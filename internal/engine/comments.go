package engine

import (
	"math/rand/v2"
)

// CommentPick is the result of choosing a comment for a visit.
type CommentPick struct {
	Comment string
	Index   int
	// Rotated is true when the pick came from rotation mode; only then
	// should the caller persist Index as the new last comment index.
	Rotated bool
}

// PickRandomComment chooses a comment uniformly at random from the pool.
// It does not advance any rotation state.
func PickRandomComment(comments []string, rng *rand.Rand) (CommentPick, error) {
	if len(comments) == 0 {
		return CommentPick{}, ErrEmptyCommentPool
	}
	i := rng.IntN(len(comments))
	return CommentPick{Comment: comments[i], Index: i}, nil
}

// NextComment chooses the next comment in rotation order after lastIndex,
// wrapping from the end of the pool back to the start. A lastIndex < 0
// means no comment has been used yet, so the first comment is returned.
func NextComment(comments []string, lastIndex int) (CommentPick, error) {
	if len(comments) == 0 {
		return CommentPick{}, ErrEmptyCommentPool
	}
	if lastIndex < 0 {
		lastIndex = -1
	}
	i := (lastIndex + 1) % len(comments)
	return CommentPick{Comment: comments[i], Index: i, Rotated: true}, nil
}
