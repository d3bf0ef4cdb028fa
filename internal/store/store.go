// Package store persists the channel list, comment pool and run settings
// as JSON documents in the data directory. Saves replace the whole
// document; there are no partial updates.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	channelsFile = "channels.json"
	commentsFile = "comments.json"
	settingsFile = "settings.json"
)

// Store handles all JSON file persistence
type Store struct {
	dir string
}

// New creates a store rooted at dir
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// LoadChannels reads the channel list. A missing file is an empty list.
func (s *Store) LoadChannels() ([]Channel, error) {
	var channels []Channel
	if err := s.load(channelsFile, &channels); err != nil {
		if os.IsNotExist(err) {
			return []Channel{}, nil
		}
		return nil, err
	}
	return channels, nil
}

// SaveChannels writes the full channel list.
func (s *Store) SaveChannels(channels []Channel) error {
	return s.save(channelsFile, channels)
}

// AddChannel appends a new channel with a fresh ID and persists the list.
func (s *Store) AddChannel(name, url string) (Channel, error) {
	channels, err := s.LoadChannels()
	if err != nil {
		return Channel{}, err
	}

	ch := Channel{
		ID:      uuid.NewString(),
		Name:    name,
		URL:     url,
		AddedAt: time.Now(),
	}
	channels = append(channels, ch)

	if err := s.SaveChannels(channels); err != nil {
		return Channel{}, err
	}
	return ch, nil
}

// RemoveChannel deletes a channel by ID. Channels are never removed
// automatically; this is the only deletion path.
func (s *Store) RemoveChannel(id string) error {
	channels, err := s.LoadChannels()
	if err != nil {
		return err
	}

	kept := channels[:0]
	for _, ch := range channels {
		if ch.ID != id {
			kept = append(kept, ch)
		}
	}
	if len(kept) == len(channels) {
		return fmt.Errorf("channel %s not found", id)
	}

	return s.SaveChannels(kept)
}

// LoadComments reads the comment pool in insertion order.
func (s *Store) LoadComments() ([]string, error) {
	var comments []string
	if err := s.load(commentsFile, &comments); err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return comments, nil
}

// SaveComments writes the full comment pool.
func (s *Store) SaveComments(comments []string) error {
	return s.save(commentsFile, comments)
}

// LoadSettings reads run settings, falling back to defaults when no
// settings file exists yet.
func (s *Store) LoadSettings() (Settings, error) {
	var settings Settings
	if err := s.load(settingsFile, &settings); err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}
	return settings, nil
}

// SaveSettings writes the settings record.
func (s *Store) SaveSettings(settings Settings) error {
	return s.save(settingsFile, settings)
}

func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) save(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, name), data, 0600)
}
