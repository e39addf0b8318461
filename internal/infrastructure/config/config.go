package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Comfort Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Database  DatabaseConfig  `yaml:"database"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Slots     SlotsConfig     `yaml:"slots"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig contains deployment-wide information.
//
// Timezone is the reference civil timezone used for all slot and "today"
// calculations. It is deliberately not the server's local zone: every store
// in a deployment shares one wall-clock schedule.
type SiteConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// CatalogConfig points at the static store/zone catalog file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// FeedbackConfig contains the submission-eligibility policy settings.
//
// Policy selects the eligibility variant: "cooldown" allows one submission
// per zone per cooldown window; "slot" allows one submission per
// (zone, slot, day) triple.
type FeedbackConfig struct {
	Policy           string `yaml:"policy"`
	CooldownSeconds  int    `yaml:"cooldown_seconds"`
	MaxEntries       int    `yaml:"max_entries"`
	TickSeconds      int    `yaml:"tick_seconds"`
	RetentionDays    int    `yaml:"retention_days"`
	ReminderMinutes  int    `yaml:"reminder_minutes"`
	MaintenanceHours int    `yaml:"maintenance_hours"`
}

// SlotsConfig defines the daily time slots. An empty list selects the
// built-in defaults (Morning/Afternoon/Evening).
type SlotsConfig struct {
	Definitions []SlotDefinition `yaml:"definitions"`
}

// SlotDefinition is one named daily window, half-open [start_hour, end_hour)
// on the reference timezone's 24-hour clock.
type SlotDefinition struct {
	ID        string `yaml:"id"`
	Label     string `yaml:"label"`
	StartHour int    `yaml:"start_hour"`
	EndHour   int    `yaml:"end_hour"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
// The broker is optional: when Enabled is false, accepted feedback is not
// relayed to the building-management bus.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Eligibility policy variants.
const (
	PolicyCooldown = "cooldown"
	PolicySlot     = "slot"
)

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: COMFORT_SECTION_KEY
// For example: COMFORT_DATABASE_PATH, COMFORT_SITE_TIMEZONE
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:       "site-001",
			Name:     "Comfort Core",
			Timezone: "Asia/Bangkok",
		},
		Catalog: CatalogConfig{
			Path: "./configs/stores.yaml",
		},
		Database: DatabaseConfig{
			Path:        "./data/comfort.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Feedback: FeedbackConfig{
			Policy:           PolicyCooldown,
			CooldownSeconds:  60,
			MaxEntries:       1000,
			TickSeconds:      1,
			RetentionDays:    30,
			ReminderMinutes:  5,
			MaintenanceHours: 6,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "comfort-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: COMFORT_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Site
	if v := os.Getenv("COMFORT_SITE_TIMEZONE"); v != "" {
		cfg.Site.Timezone = v
	}

	// Catalog
	if v := os.Getenv("COMFORT_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}

	// Database
	if v := os.Getenv("COMFORT_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Feedback policy
	if v := os.Getenv("COMFORT_FEEDBACK_POLICY"); v != "" {
		cfg.Feedback.Policy = v
	}
	if v := os.Getenv("COMFORT_FEEDBACK_COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feedback.CooldownSeconds = n
		}
	}

	// API
	if v := os.Getenv("COMFORT_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("COMFORT_API_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = n
		}
	}

	// MQTT
	if v := os.Getenv("COMFORT_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("COMFORT_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("COMFORT_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("COMFORT_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Site validation
	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}
	if c.Site.Timezone == "" {
		errs = append(errs, "site.timezone is required")
	} else if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("site.timezone %q is not a valid IANA timezone", c.Site.Timezone))
	}

	// Catalog validation
	if c.Catalog.Path == "" {
		errs = append(errs, "catalog.path is required")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// Feedback policy validation
	switch c.Feedback.Policy {
	case PolicyCooldown, PolicySlot:
	default:
		errs = append(errs, fmt.Sprintf("feedback.policy must be %q or %q", PolicyCooldown, PolicySlot))
	}
	if c.Feedback.CooldownSeconds <= 0 {
		errs = append(errs, "feedback.cooldown_seconds must be positive")
	}
	if c.Feedback.MaxEntries <= 0 {
		errs = append(errs, "feedback.max_entries must be positive")
	}
	if c.Feedback.TickSeconds <= 0 {
		errs = append(errs, "feedback.tick_seconds must be positive")
	}
	if c.Feedback.RetentionDays < 1 {
		errs = append(errs, "feedback.retention_days must be at least 1")
	}

	// Slot definitions: half-open [start, end) windows must be well formed
	// and must not overlap. Gaps between slots are allowed.
	for i, s := range c.Slots.Definitions {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("slots.definitions[%d].id is required", i))
		}
		if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 1 || s.EndHour > 24 {
			errs = append(errs, fmt.Sprintf("slots.definitions[%d] hours out of range", i))
		}
		if s.StartHour >= s.EndHour {
			errs = append(errs, fmt.Sprintf("slots.definitions[%d] start_hour must be before end_hour", i))
		}
		for j := 0; j < i; j++ {
			prev := c.Slots.Definitions[j]
			if s.StartHour < prev.EndHour && prev.StartHour < s.EndHour {
				errs = append(errs, fmt.Sprintf("slots.definitions[%d] overlaps slots.definitions[%d]", i, j))
			}
		}
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Location resolves the reference timezone. Validate guarantees it loads;
// UTC is the fallback for an unvalidated Config.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CooldownWindow returns the submission cooldown as a Duration.
func (c *Config) CooldownWindow() time.Duration {
	return time.Duration(c.Feedback.CooldownSeconds) * time.Second
}

// TickInterval returns the cooldown refresh interval as a Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Feedback.TickSeconds) * time.Second
}

// ReminderInterval returns the pending-slot reminder interval as a Duration.
func (c *Config) ReminderInterval() time.Duration {
	return time.Duration(c.Feedback.ReminderMinutes) * time.Minute
}

// MaintenanceInterval returns how often the retention sweep runs.
func (c *Config) MaintenanceInterval() time.Duration {
	return time.Duration(c.Feedback.MaintenanceHours) * time.Hour
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
