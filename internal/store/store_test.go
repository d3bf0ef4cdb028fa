package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreChannels(t *testing.T) {
	s := New(t.TempDir())

	channels, err := s.LoadChannels()
	require.NoError(t, err)
	assert.Empty(t, channels)

	ch1, err := s.AddChannel("Some Creator", "https://www.youtube.com/@somecreator")
	require.NoError(t, err)
	assert.NotEmpty(t, ch1.ID)
	assert.False(t, ch1.AddedAt.IsZero())

	ch2, err := s.AddChannel("Another Creator", "https://www.youtube.com/@another")
	require.NoError(t, err)
	assert.NotEqual(t, ch1.ID, ch2.ID)

	channels, err = s.LoadChannels()
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "Some Creator", channels[0].Name)

	require.NoError(t, s.RemoveChannel(ch1.ID))
	channels, err = s.LoadChannels()
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, ch2.ID, channels[0].ID)

	err = s.RemoveChannel("no-such-id")
	assert.Error(t, err)
}

func TestStoreComments(t *testing.T) {
	s := New(t.TempDir())

	comments, err := s.LoadComments()
	require.NoError(t, err)
	assert.Empty(t, comments)

	pool := []string{"first", "second", "third"}
	require.NoError(t, s.SaveComments(pool))

	got, err := s.LoadComments()
	require.NoError(t, err)
	assert.Equal(t, pool, got, "insertion order must survive a round trip")
}

func TestStoreSettings(t *testing.T) {
	s := New(t.TempDir())

	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings, "missing file falls back to defaults")

	settings.WatchTimePercentage = 85
	settings.LastChannelIndex = 3
	require.NoError(t, s.SaveSettings(settings))

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{name: "defaults are valid", mutate: func(s *Settings) {}, ok: true},
		{name: "percentage too low", mutate: func(s *Settings) { s.WatchTimePercentage = 5 }, ok: false},
		{name: "percentage too high", mutate: func(s *Settings) { s.WatchTimePercentage = 150 }, ok: false},
		{name: "min below range", mutate: func(s *Settings) { s.MinWatchTimeSeconds = 5 }, ok: false},
		{name: "max above range", mutate: func(s *Settings) { s.MaxWatchTimeSeconds = 7200 }, ok: false},
		{name: "min above max", mutate: func(s *Settings) { s.MinWatchTimeSeconds = 300; s.MaxWatchTimeSeconds = 120 }, ok: false},
		{name: "pause out of range", mutate: func(s *Settings) { s.PauseBetweenChannelsSeconds = 5 }, ok: false},
		{name: "channel index below -1", mutate: func(s *Settings) { s.LastChannelIndex = -2 }, ok: false},
		{name: "boundary values", mutate: func(s *Settings) {
			s.WatchTimePercentage = 10
			s.MinWatchTimeSeconds = 10
			s.MaxWatchTimeSeconds = 3600
			s.PauseBetweenChannelsSeconds = 300
		}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
