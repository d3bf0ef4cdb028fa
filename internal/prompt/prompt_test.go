package prompt

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	r := NewReader(strings.NewReader("hello\nworld\n"))

	line, err := r.Line(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = r.Line(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "world", line)

	_, err = r.Line(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineDefault(t *testing.T) {
	t.Run("timeout yields default", func(t *testing.T) {
		// A reader that never produces input
		r := NewReader(blockedReader{})
		line, err := r.LineDefault(context.Background(), 10*time.Millisecond, "continue")
		require.NoError(t, err)
		assert.Equal(t, "continue", line)
	})

	t.Run("blank line yields default", func(t *testing.T) {
		r := NewReader(strings.NewReader("\n"))
		line, err := r.LineDefault(context.Background(), time.Second, "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", line)
	})

	t.Run("input wins over timeout", func(t *testing.T) {
		r := NewReader(strings.NewReader("answer\n"))
		line, err := r.LineDefault(context.Background(), time.Second, "fallback")
		require.NoError(t, err)
		assert.Equal(t, "answer", line)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("timeout defaults to continue", func(t *testing.T) {
		r := NewReader(blockedReader{})
		ok, err := r.Confirm(context.Background(), "continue?", 10*time.Millisecond, true)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("explicit no stops", func(t *testing.T) {
		r := NewReader(strings.NewReader("n\n"))
		ok, err := r.Confirm(context.Background(), "continue?", time.Second, true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewReader(blockedReader{})
		_, err := r.Confirm(ctx, "continue?", time.Hour, true)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// blockedReader blocks forever, simulating an idle stdin.
type blockedReader struct{}

func (blockedReader) Read([]byte) (int, error) {
	select {}
}
