package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version  int            `toml:"version"`
	Browser  BrowserConfig  `toml:"browser"`
	Run      RunConfig      `toml:"run"`
	Schedule ScheduleConfig `toml:"schedule"`
	Email    EmailConfig    `toml:"email"`
}

type BrowserConfig struct {
	Headless bool `toml:"headless"`
	// BlockedDomains are request URL patterns the browser refuses to load
	// (ad and tracking hosts, mostly to keep page loads fast and quiet).
	BlockedDomains []string `toml:"blocked_domains"`
}

type RunConfig struct {
	PollIntervalSeconds     int    `toml:"poll_interval_seconds"`
	ConfirmTimeoutSeconds   int    `toml:"confirm_timeout_seconds"`
	FallbackDurationSeconds int    `toml:"fallback_duration_seconds"`
	CommentMode             string `toml:"comment_mode"` // "rotate" or "random"
}

type ScheduleConfig struct {
	Enabled       bool   `toml:"enabled"`
	IntervalHours int    `toml:"interval_hours"`
	Timezone      string `toml:"timezone"`
}

type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	FromAddr string `toml:"from_address"`
	ToAddr   string `toml:"to_address"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Browser: BrowserConfig{
			Headless: true,
			BlockedDomains: []string{
				"*doubleclick.net*",
				"*googlesyndication.com*",
				"*google-analytics.com*",
			},
		},
		Run: RunConfig{
			PollIntervalSeconds:     10,
			ConfirmTimeoutSeconds:   10,
			FallbackDurationSeconds: 300,
			CommentMode:             "rotate",
		},
		Schedule: ScheduleConfig{
			Enabled:       false,
			IntervalHours: 6,
			Timezone:      "Local",
		},
		Email: EmailConfig{
			Provider: "smtp",
			SMTPPort: 587,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tubeboost"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory holding channels, comments, settings,
// cookies and the visit history database.
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
