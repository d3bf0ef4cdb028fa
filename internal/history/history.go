// Package history keeps a sqlite log of every visit a run performed, for
// the stats view and the HTML report.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// Visit is one recorded attempt to support a channel.
type Visit struct {
	ID             int64
	ChannelID      string
	ChannelName    string
	VideoTitle     string
	Outcome        string
	Supported      bool
	WatchedSeconds float64
	Liked          bool
	Subscribed     bool
	Commented      bool
	Err            string
	StartedAt      time.Time
	EndedAt        time.Time
}

// ChannelStats aggregates visit history per channel.
type ChannelStats struct {
	ChannelID           string
	ChannelName         string
	Visits              int
	Supported           int
	TotalWatchedSeconds float64
	LastVisit           time.Time
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		channel_id TEXT NOT NULL,
		channel_name TEXT,
		video_title TEXT,
		outcome TEXT NOT NULL,
		supported BOOLEAN NOT NULL,
		watched_seconds REAL,
		liked BOOLEAN,
		subscribed BOOLEAN,
		commented BOOLEAN,
		error TEXT,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_visits_channel ON visits(channel_id);
	CREATE INDEX IF NOT EXISTS idx_visits_started_at ON visits(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordVisit inserts a visit row
func (s *Store) RecordVisit(v *Visit) error {
	res, err := s.db.Exec(`
		INSERT INTO visits (channel_id, channel_name, video_title, outcome,
			supported, watched_seconds, liked, subscribed, commented, error,
			started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ChannelID, v.ChannelName, v.VideoTitle, v.Outcome,
		v.Supported, v.WatchedSeconds, v.Liked, v.Subscribed, v.Commented, v.Err,
		v.StartedAt, v.EndedAt)
	if err != nil {
		return err
	}

	v.ID, _ = res.LastInsertId()
	return nil
}

// RecentVisits returns the newest visits first
func (s *Store) RecentVisits(limit int) ([]Visit, error) {
	rows, err := s.db.Query(`
		SELECT id, channel_id, channel_name, video_title, outcome,
			supported, watched_seconds, liked, subscribed, commented, error,
			started_at, ended_at
		FROM visits
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		err := rows.Scan(
			&v.ID, &v.ChannelID, &v.ChannelName, &v.VideoTitle, &v.Outcome,
			&v.Supported, &v.WatchedSeconds, &v.Liked, &v.Subscribed, &v.Commented, &v.Err,
			&v.StartedAt, &v.EndedAt,
		)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// StatsByChannel aggregates visits per channel, most supported first
func (s *Store) StatsByChannel() ([]ChannelStats, error) {
	rows, err := s.db.Query(`
		SELECT channel_id, channel_name,
			COUNT(*) AS visits,
			SUM(CASE WHEN supported THEN 1 ELSE 0 END) AS supported,
			COALESCE(SUM(watched_seconds), 0) AS total_watched,
			MAX(started_at) AS last_visit
		FROM visits
		GROUP BY channel_id, channel_name
		ORDER BY supported DESC, visits DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ChannelStats
	for rows.Next() {
		var cs ChannelStats
		var lastVisit any
		err := rows.Scan(
			&cs.ChannelID, &cs.ChannelName, &cs.Visits, &cs.Supported,
			&cs.TotalWatchedSeconds, &lastVisit,
		)
		if err != nil {
			return nil, err
		}
		cs.LastVisit = parseTimeValue(lastVisit)
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

// parseTimeValue handles the raw value of an aggregate like MAX(started_at):
// sqlite loses the column's declared type there, so the driver may return
// text instead of time.Time.
func parseTimeValue(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseTimeString(t)
	case []byte:
		return parseTimeString(string(t))
	}
	return time.Time{}
}

func parseTimeString(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
