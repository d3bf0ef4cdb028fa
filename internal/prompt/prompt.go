// Package prompt reads interactive input with optional
// timeout-with-default semantics.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Reader reads lines from an input stream in a background goroutine so
// callers can race a read against a timeout or context cancellation.
type Reader struct {
	lines chan string
}

// NewReader starts reading lines from r. The goroutine exits when r is
// exhausted.
func NewReader(r io.Reader) *Reader {
	pr := &Reader{lines: make(chan string)}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			pr.lines <- strings.TrimSpace(scanner.Text())
		}
		close(pr.lines)
	}()
	return pr
}

// Line blocks until a line of input arrives.
func (r *Reader) Line(ctx context.Context) (string, error) {
	select {
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// LineDefault waits up to timeout for a line of input, returning def when
// the timeout elapses or input is exhausted.
func (r *Reader) LineDefault(ctx context.Context, timeout time.Duration, def string) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-r.lines:
		if !ok {
			return def, nil
		}
		if line == "" {
			return def, nil
		}
		return line, nil
	case <-timer.C:
		return def, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Confirm asks a yes/no question, defaulting to def after timeout seconds
// of inactivity. Anything starting with "n" or "N" is a no.
func (r *Reader) Confirm(ctx context.Context, question string, timeout time.Duration, def bool) (bool, error) {
	suffix := "[Y/n]"
	defAnswer := "y"
	if !def {
		suffix = "[y/N]"
		defAnswer = "n"
	}
	fmt.Printf("%s %s (auto-%s in %s): ", question, suffix, defAnswer, timeout)

	answer, err := r.LineDefault(ctx, timeout, defAnswer)
	if err != nil {
		return false, err
	}
	return !strings.HasPrefix(strings.ToLower(answer), "n"), nil
}
