package store

import (
	"fmt"
	"time"
)

// Channel is one target channel in the support list.
type Channel struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	AddedAt         time.Time  `json:"added_at"`
	SupportCount    int        `json:"support_count"`
	LastSupportedAt *time.Time `json:"last_supported_at,omitempty"`
}

// Settings controls how a support run behaves. LastChannelIndex and
// LastCommentIndex carry rotation state across runs; -1 means no previous
// run recorded.
type Settings struct {
	WatchTimePercentage         int  `json:"watch_time_percentage"`
	MinWatchTimeSeconds         int  `json:"min_watch_time_seconds"`
	MaxWatchTimeSeconds         int  `json:"max_watch_time_seconds"`
	PauseBetweenChannelsSeconds int  `json:"pause_between_channels_seconds"`
	LikeVideos                  bool `json:"like_videos"`
	SubscribeToChannels         bool `json:"subscribe_to_channels"`
	RotateChannels              bool `json:"rotate_channels"`
	LastChannelIndex            int  `json:"last_channel_index"`
	LastCommentIndex            int  `json:"last_comment_index"`
}

// DefaultSettings returns settings with sensible defaults
func DefaultSettings() Settings {
	return Settings{
		WatchTimePercentage:         70,
		MinWatchTimeSeconds:         60,
		MaxWatchTimeSeconds:         600,
		PauseBetweenChannelsSeconds: 30,
		LikeVideos:                  true,
		SubscribeToChannels:         false,
		RotateChannels:              true,
		LastChannelIndex:            -1,
		LastCommentIndex:            -1,
	}
}

// Validate checks all settings ranges. It is called when settings are
// edited, not on every use.
func (s Settings) Validate() error {
	if s.WatchTimePercentage < 10 || s.WatchTimePercentage > 100 {
		return fmt.Errorf("watch time percentage must be between 10 and 100, got %d", s.WatchTimePercentage)
	}
	if s.MinWatchTimeSeconds < 10 || s.MinWatchTimeSeconds > 300 {
		return fmt.Errorf("min watch time must be between 10 and 300 seconds, got %d", s.MinWatchTimeSeconds)
	}
	if s.MaxWatchTimeSeconds < 60 || s.MaxWatchTimeSeconds > 3600 {
		return fmt.Errorf("max watch time must be between 60 and 3600 seconds, got %d", s.MaxWatchTimeSeconds)
	}
	if s.MinWatchTimeSeconds > s.MaxWatchTimeSeconds {
		return fmt.Errorf("min watch time (%ds) cannot exceed max watch time (%ds)",
			s.MinWatchTimeSeconds, s.MaxWatchTimeSeconds)
	}
	if s.PauseBetweenChannelsSeconds < 10 || s.PauseBetweenChannelsSeconds > 300 {
		return fmt.Errorf("pause between channels must be between 10 and 300 seconds, got %d", s.PauseBetweenChannelsSeconds)
	}
	if s.LastChannelIndex < -1 {
		return fmt.Errorf("last channel index must be >= -1, got %d", s.LastChannelIndex)
	}
	if s.LastCommentIndex < -1 {
		return fmt.Errorf("last comment index must be >= -1, got %d", s.LastCommentIndex)
	}
	return nil
}
