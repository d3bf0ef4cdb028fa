package engine

import "math"

// FallbackDurationSeconds is substituted by callers when a video's real
// duration cannot be read (live streams, premieres, missing metadata).
const FallbackDurationSeconds = 300

// WatchSeconds computes how long to watch a video, in whole seconds.
//
// The target is pct% of the real duration, capped at maxWatch and floored
// at minWatch - except that the floor never exceeds the video itself, so a
// 50 second video with a 60 second minimum yields 50, not 60. The result
// is always at least 1.
//
// minWatch > maxWatch is only prevented in the settings editor; if a stale
// settings file slips an inverted pair through, the bounds are swapped
// here rather than producing a target above the configured ceiling.
func WatchSeconds(durationSeconds float64, pct, minWatch, maxWatch int) int {
	if minWatch > maxWatch {
		minWatch, maxWatch = maxWatch, minWatch
	}

	raw := int(math.Floor(durationSeconds * float64(pct) / 100))
	if raw > maxWatch {
		raw = maxWatch
	}

	effectiveMin := minWatch
	if float64(effectiveMin) > durationSeconds {
		effectiveMin = int(math.Floor(durationSeconds))
	}

	result := raw
	if result < effectiveMin {
		result = effectiveMin
	}
	if result < 1 {
		result = 1
	}
	return result
}
