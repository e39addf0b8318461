// Comfort Core - In-Store Thermal Comfort Feedback Service
//
// This is the main entry point for the Comfort Core application. It serves
// the in-store feedback surface for retail zones:
//   - Per-zone comfort submissions with policy-based eligibility
//   - Daily time-slot scheduling in the deployment's reference timezone
//   - Real-time state broadcast to kiosk clients over WebSocket
//   - Optional relay of accepted feedback to the building-management bus
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dohome-iot/comfort-core/migrations"

	"github.com/dohome-iot/comfort-core/internal/api"
	"github.com/dohome-iot/comfort-core/internal/catalog"
	"github.com/dohome-iot/comfort-core/internal/feedback"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/config"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/database"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/influxdb"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/logging"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/mqtt"
	"github.com/dohome-iot/comfort-core/internal/schedule"
	"github.com/dohome-iot/comfort-core/internal/session"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Comfort Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Load store catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading store catalog: %w", err)
	}
	log.Info("store catalog loaded", "path", cfg.Catalog.Path, "stores", len(cat.Stores()))

	// Build the slot schedule in the reference timezone
	sched, err := buildSchedule(cfg)
	if err != nil {
		return fmt.Errorf("building slot schedule: %w", err)
	}
	log.Info("slot schedule ready",
		"slots", len(sched.Slots()),
		"timezone", cfg.Site.Timezone,
	)

	// Feedback log and slot completion stores
	store := feedback.NewSQLiteStore(db.DB, cfg.Feedback.MaxEntries)
	store.SetLogger(log)
	completions := schedule.NewSQLiteCompletionStore(db.DB)
	completions.SetLogger(log)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled, feedback will not be relayed to the building bus")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// WebSocket hub, shared between the API server and the controller
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	// Session controller with the configured eligibility policy
	controller, err := buildController(cfg, store, sched, completions, hub, mqttClient, influxClient, log)
	if err != nil {
		return fmt.Errorf("creating session controller: %w", err)
	}

	// Warm the per-zone state cache from the persisted log
	for _, sc := range cat.Stores() {
		controller.LoadState(ctx, sc.ID, sc.ZoneIDs())
	}
	log.Info("zone state loaded", "policy", cfg.Feedback.Policy)

	// Background loops: cooldown ticks, slot reminders, retention pruning
	go controller.Run(ctx)
	go controller.RunReminders(ctx, cfg.ReminderInterval())
	go runMaintenance(ctx, cfg, sched, completions, log)

	// HTTP API server
	server, err := api.New(api.Deps{
		Config:        cfg.API,
		WS:            cfg.WebSocket,
		Logger:        log,
		Catalog:       cat,
		Controller:    controller,
		Schedule:      sched,
		FeedbackStore: store,
		ExternalHub:   hub,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Comfort Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses COMFORT_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("COMFORT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildSchedule constructs the slot schedule from config, falling back to
// the built-in Morning/Afternoon/Evening slots when none are defined.
func buildSchedule(cfg *config.Config) (*schedule.Schedule, error) {
	loc := cfg.Location()

	slots := schedule.DefaultSlots()
	if len(cfg.Slots.Definitions) > 0 {
		slots = make([]schedule.TimeSlot, 0, len(cfg.Slots.Definitions))
		for _, def := range cfg.Slots.Definitions {
			slots = append(slots, schedule.TimeSlot{
				ID:        def.ID,
				Label:     def.Label,
				StartHour: def.StartHour,
				EndHour:   def.EndHour,
			})
		}
	}

	return schedule.New(slots, loc)
}

// buildController assembles the session controller with the configured
// eligibility policy and whichever optional sinks are connected.
func buildController(
	cfg *config.Config,
	store feedback.Store,
	sched *schedule.Schedule,
	completions schedule.CompletionStore,
	hub *api.Hub,
	mqttClient *mqtt.Client,
	influxClient *influxdb.Client,
	log *logging.Logger,
) (*session.Controller, error) {
	var policy session.Policy
	switch cfg.Feedback.Policy {
	case config.PolicySlot:
		policy = session.NewSlotPolicy(sched, completions)
	default:
		policy = session.NewCooldownPolicy(store, cfg.CooldownWindow())
	}

	deps := session.Deps{
		Store:       store,
		Schedule:    sched,
		Completions: completions,
		Policy:      policy,
		Window:      cfg.CooldownWindow(),
		Tick:        cfg.TickInterval(),
		Notifier:    hub,
		Logger:      log,
	}
	if mqttClient != nil {
		deps.Bus = mqttClient
	}
	if influxClient != nil {
		deps.Telemetry = influxClient
	}

	return session.New(deps)
}

// runMaintenance prunes slot completion records older than the configured
// retention window, on the configured interval, until shutdown.
func runMaintenance(
	ctx context.Context,
	cfg *config.Config,
	sched *schedule.Schedule,
	completions schedule.CompletionStore,
	log *logging.Logger,
) {
	interval := cfg.MaintenanceInterval()
	if interval <= 0 || cfg.Feedback.RetentionDays <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := sched.DateString(time.Now().AddDate(0, 0, -cfg.Feedback.RetentionDays))
			pruned, err := completions.PruneBefore(ctx, cutoff)
			if err != nil {
				log.Warn("slot completion prune failed", "cutoff", cutoff, "error", err)
				continue
			}
			if pruned > 0 {
				log.Info("slot completions pruned", "cutoff", cutoff, "records", pruned)
			}
		}
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
