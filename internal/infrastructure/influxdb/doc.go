// Package influxdb provides InfluxDB connectivity for Comfort Core.
//
// It wraps the official influxdb-client-go v2 library with Comfort Core-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Accepted comfort feedback per store and zone
//   - Slot completion events for participation dashboards
//   - Ad-hoc service metrics via the generic write helpers
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "dohome",
//	    Bucket: "comfort",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Export an accepted submission
//	client.WriteFeedbackPoint("store-central-rama9", "zone-a", feedback.TooHot, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead when many zones submit in quick succession.
package influxdb
