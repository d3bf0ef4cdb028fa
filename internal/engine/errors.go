package engine

import "errors"

// Precondition errors abort a run before any channel is visited.
var (
	ErrEmptyChannelList = errors.New("no channels configured")
	ErrEmptyCommentPool = errors.New("comment pool is empty")
)
