package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
site:
  id: "test-site"
  timezone: "Asia/Bangkok"
catalog:
  path: "/tmp/stores.yaml"
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
feedback:
  policy: "slot"
  cooldown_seconds: 60
api:
  host: "0.0.0.0"
  port: 8080
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-site" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-site")
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
	if cfg.Feedback.Policy != PolicySlot {
		t.Errorf("Feedback.Policy = %q, want %q", cfg.Feedback.Policy, PolicySlot)
	}

	// Defaults survive partial files
	if cfg.Feedback.MaxEntries != 1000 {
		t.Errorf("Feedback.MaxEntries = %d, want 1000", cfg.Feedback.MaxEntries)
	}
	if cfg.Feedback.TickSeconds != 1 {
		t.Errorf("Feedback.TickSeconds = %d, want 1", cfg.Feedback.TickSeconds)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	configPath := writeConfig(t, `
site:
  id: "test-site"
  timezone: "Mars/Olympus"
`)
	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for unknown timezone, got nil")
	}
}

func TestLoad_InvalidPolicy(t *testing.T) {
	configPath := writeConfig(t, `
feedback:
  policy: "honour-system"
`)
	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for unknown policy, got nil")
	}
}

func TestLoad_OverlappingSlots(t *testing.T) {
	configPath := writeConfig(t, `
slots:
  definitions:
    - id: "morning"
      label: "Morning"
      start_hour: 9
      end_hour: 13
    - id: "midday"
      label: "Midday"
      start_hour: 12
      end_hour: 15
`)
	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for overlapping slots, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
site:
  id: "test-site"
`)

	t.Setenv("COMFORT_SITE_TIMEZONE", "Europe/London")
	t.Setenv("COMFORT_FEEDBACK_COOLDOWN_SECONDS", "120")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Site.Timezone != "Europe/London" {
		t.Errorf("Site.Timezone = %q, want Europe/London", cfg.Site.Timezone)
	}
	if cfg.Feedback.CooldownSeconds != 120 {
		t.Errorf("Feedback.CooldownSeconds = %d, want 120", cfg.Feedback.CooldownSeconds)
	}
}

func TestValidate_SlotHourBounds(t *testing.T) {
	tests := []struct {
		name    string
		slot    SlotDefinition
		wantErr bool
	}{
		{"valid", SlotDefinition{ID: "morning", StartHour: 9, EndHour: 12}, false},
		{"inverted", SlotDefinition{ID: "x", StartHour: 12, EndHour: 9}, true},
		{"negative start", SlotDefinition{ID: "x", StartHour: -1, EndHour: 5}, true},
		{"end past midnight", SlotDefinition{ID: "x", StartHour: 20, EndHour: 25}, true},
		{"missing id", SlotDefinition{StartHour: 9, EndHour: 12}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Slots.Definitions = []SlotDefinition{tt.slot}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.CooldownWindow().Seconds(); got != 60 {
		t.Errorf("CooldownWindow() = %vs, want 60s", got)
	}
	if got := cfg.TickInterval().Seconds(); got != 1 {
		t.Errorf("TickInterval() = %vs, want 1s", got)
	}
	if got := cfg.ReminderInterval().Minutes(); got != 5 {
		t.Errorf("ReminderInterval() = %vm, want 5m", got)
	}
}
