package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run load: %v", err)
	}
	if cfg.WeekStart != "monday" || cfg.SlotMinutes != 30 || cfg.OverlapPolicy != "stack" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 perms, got %v", info.Mode().Perm())
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "week_start: sunday\nslot_minutes: 60\noverlap_policy: drop-duplicates\nlanguage: ar\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WeekStart != "sunday" {
		t.Fatalf("expected sunday week start, got %q", cfg.WeekStart)
	}
	if cfg.SlotMinutes != 60 {
		t.Fatalf("expected 60-minute slots, got %d", cfg.SlotMinutes)
	}
	if cfg.OverlapPolicy != "drop-duplicates" {
		t.Fatalf("expected drop-duplicates policy, got %q", cfg.OverlapPolicy)
	}
	if cfg.Language != "ar" {
		t.Fatalf("expected arabic, got %q", cfg.Language)
	}
	// Untouched fields fall back to defaults.
	if cfg.Database != "clinicd.db" || cfg.Grouping != "exact-start" {
		t.Fatalf("expected normalized defaults, got %+v", cfg)
	}
}

func TestNormalizeRejectsUnknownValues(t *testing.T) {
	cfg := &Config{WeekStart: "friday", OverlapPolicy: "merge", Grouping: "fuzzy", Language: "fr", SlotMinutes: -5}
	cfg.Normalize()
	if cfg.WeekStart != "monday" || cfg.OverlapPolicy != "stack" || cfg.Grouping != "exact-start" {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
	if cfg.Language != "en" || cfg.SlotMinutes != 30 {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("week_start: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
