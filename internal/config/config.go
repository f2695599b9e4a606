// Package config loads the clinicd YAML configuration, creating a
// default file on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Database is the SQLite database path.
	Database string `yaml:"database"`

	// Language is the UI language: "en" or "ar".
	Language string `yaml:"language"`

	// WeekStart controls which weekday opens the week in every view:
	// "monday" (default) or "sunday".
	WeekStart string `yaml:"week_start"`

	// SlotMinutes is the timeline granularity for week/day views.
	SlotMinutes int `yaml:"slot_minutes"`

	// OverlapPolicy decides same-time collisions: "stack" (default)
	// or "drop-duplicates". The two are mutually exclusive behaviors.
	OverlapPolicy string `yaml:"overlap_policy"`

	// Grouping selects the collision key: "exact-start" (default) or
	// "interval".
	Grouping string `yaml:"grouping"`

	// ReminderLeadMinutes is how long before a timed appointment a
	// reminder fires. Zero disables reminders.
	ReminderLeadMinutes int `yaml:"reminder_lead_minutes"`
}

func DefaultConfig() *Config {
	return &Config{
		Database:            "clinicd.db",
		Language:            "en",
		WeekStart:           "monday",
		SlotMinutes:         30,
		OverlapPolicy:       "stack",
		Grouping:            "exact-start",
		ReminderLeadMinutes: 15,
	}
}

// Normalize fills missing or unrecognized values with defaults so that
// partially filled configs from older versions still behave.
func (c *Config) Normalize() {
	if c.Database == "" {
		c.Database = "clinicd.db"
	}
	switch c.Language {
	case "en", "ar":
	default:
		c.Language = "en"
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = "monday"
	}
	if c.SlotMinutes <= 0 || c.SlotMinutes > 24*60 {
		c.SlotMinutes = 30
	}
	switch c.OverlapPolicy {
	case "stack", "drop-duplicates":
	default:
		c.OverlapPolicy = "stack"
	}
	switch c.Grouping {
	case "exact-start", "interval":
	default:
		c.Grouping = "exact-start"
	}
	if c.ReminderLeadMinutes < 0 {
		c.ReminderLeadMinutes = 0
	}
}

// Load reads the YAML config at path. A missing file is a first run:
// the default config is written there with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if saveErr := Save(path, cfg); saveErr != nil {
				return cfg, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically (temp file + rename) with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".clinicd-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
