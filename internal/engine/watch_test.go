package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProbe returns canned statuses in sequence, holding the last one.
type scriptedProbe struct {
	statuses []PlaybackStatus
	errs     []error
	calls    int
}

func (p *scriptedProbe) Status(_ context.Context) (PlaybackStatus, error) {
	i := p.calls
	if i >= len(p.statuses) {
		i = len(p.statuses) - 1
	}
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return PlaybackStatus{}, p.errs[i]
	}
	return p.statuses[i], nil
}

func TestWatchCompletesAtTarget(t *testing.T) {
	probe := &scriptedProbe{statuses: []PlaybackStatus{
		{VideoID: "abc", ElapsedSeconds: 10, DurationSeconds: 600},
		{VideoID: "abc", ElapsedSeconds: 20, DurationSeconds: 600},
		{VideoID: "abc", ElapsedSeconds: 31, DurationSeconds: 600},
	}}

	w := &Watcher{PollInterval: time.Millisecond}
	res := w.Watch(context.Background(), probe, "abc", 30*time.Second)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.True(t, res.Outcome.Supported())
	assert.InDelta(t, 31, res.WatchedSeconds, 0.001)
}

func TestWatchCompletesNearEnd(t *testing.T) {
	// Elapsed is well short of the target but playback is within 5s of the
	// end of the video, which counts as finished.
	probe := &scriptedProbe{statuses: []PlaybackStatus{
		{VideoID: "abc", ElapsedSeconds: 56, DurationSeconds: 60},
	}}

	w := &Watcher{PollInterval: time.Millisecond}
	res := w.Watch(context.Background(), probe, "abc", 300*time.Second)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
}

func TestWatchCompletesOnEndedFlag(t *testing.T) {
	probe := &scriptedProbe{statuses: []PlaybackStatus{
		{VideoID: "abc", ElapsedSeconds: 42, Ended: true},
	}}

	w := &Watcher{PollInterval: time.Millisecond}
	res := w.Watch(context.Background(), probe, "abc", 300*time.Second)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
}

func TestWatchInterruptedByVideoChange(t *testing.T) {
	probe := &scriptedProbe{statuses: []PlaybackStatus{
		{VideoID: "abc", ElapsedSeconds: 10, DurationSeconds: 600},
		{VideoID: "autoplay-next", ElapsedSeconds: 1, DurationSeconds: 300},
	}}

	w := &Watcher{PollInterval: time.Millisecond}
	res := w.Watch(context.Background(), probe, "abc", 300*time.Second)

	assert.Equal(t, OutcomeInterrupted, res.Outcome)
	// Interrupted is not an error: the visit still counts as supported.
	assert.True(t, res.Outcome.Supported())
	assert.NoError(t, res.Err)
	assert.InDelta(t, 10, res.WatchedSeconds, 0.001)
}

func TestWatchErroredOnProbeFailure(t *testing.T) {
	probeErr := errors.New("page context lost")
	probe := &scriptedProbe{
		statuses: []PlaybackStatus{
			{VideoID: "abc", ElapsedSeconds: 10, DurationSeconds: 600},
			{},
		},
		errs: []error{nil, probeErr},
	}

	w := &Watcher{PollInterval: time.Millisecond}
	res := w.Watch(context.Background(), probe, "abc", 300*time.Second)

	assert.Equal(t, OutcomeErrored, res.Outcome)
	assert.False(t, res.Outcome.Supported())
	assert.ErrorIs(t, res.Err, probeErr)
}

func TestWatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe := &scriptedProbe{statuses: []PlaybackStatus{{VideoID: "abc"}}}
	w := &Watcher{PollInterval: time.Hour} // never ticks; cancellation must win
	res := w.Watch(ctx, probe, "abc", time.Minute)

	require.Equal(t, OutcomeErrored, res.Outcome)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
