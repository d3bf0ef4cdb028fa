package engine

import (
	"context"
	"time"
)

// DefaultPollInterval is how often the watch loop samples the player.
const DefaultPollInterval = 10 * time.Second

// nearEndSeconds: playback within this many seconds of the end counts as
// finished, matching the player's own end-of-video behavior.
const nearEndSeconds = 5

// Outcome is the terminal state of one watch.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeInterrupted
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeErrored:
		return "errored"
	}
	return "unknown"
}

// Supported reports whether the visit still counts toward the channel's
// support count. An interrupted watch (autoplay moved to another video)
// does; an errored one does not.
func (o Outcome) Supported() bool {
	return o != OutcomeErrored
}

// PlaybackStatus is a point-in-time reading of the player.
type PlaybackStatus struct {
	VideoID         string
	ElapsedSeconds  float64
	DurationSeconds float64
	Ended           bool
}

// PlaybackProbe reads the current playback state from the browser.
type PlaybackProbe interface {
	Status(ctx context.Context) (PlaybackStatus, error)
}

// WatchResult describes how a watch ended.
type WatchResult struct {
	Outcome        Outcome
	WatchedSeconds float64
	Err            error
}

// Watcher runs the watch loop for one video: poll the player at a fixed
// interval until the target watch time is reached, playback ends, autoplay
// advances to a different video, or the probe fails.
type Watcher struct {
	PollInterval time.Duration // zero means DefaultPollInterval
}

// Watch blocks until the watch of videoID ends and reports the outcome.
// Target reached or playback ended (or within nearEndSeconds of the end)
// is Completed. A changed video ID is Interrupted: not an error, the visit
// still counts. A probe failure or canceled context is Errored.
func (w *Watcher) Watch(ctx context.Context, probe PlaybackProbe, videoID string, target time.Duration) WatchResult {
	interval := w.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var watched float64
	for {
		select {
		case <-ctx.Done():
			return WatchResult{Outcome: OutcomeErrored, WatchedSeconds: watched, Err: ctx.Err()}
		case <-ticker.C:
		}

		st, err := probe.Status(ctx)
		if err != nil {
			return WatchResult{Outcome: OutcomeErrored, WatchedSeconds: watched, Err: err}
		}

		if st.VideoID != "" && st.VideoID != videoID {
			// Autoplay moved on to another video.
			return WatchResult{Outcome: OutcomeInterrupted, WatchedSeconds: watched}
		}

		watched = st.ElapsedSeconds

		if st.Ended || (st.DurationSeconds > 0 && st.DurationSeconds-st.ElapsedSeconds <= nearEndSeconds) {
			return WatchResult{Outcome: OutcomeCompleted, WatchedSeconds: watched}
		}
		if time.Duration(st.ElapsedSeconds*float64(time.Second)) >= target {
			return WatchResult{Outcome: OutcomeCompleted, WatchedSeconds: watched}
		}
	}
}
