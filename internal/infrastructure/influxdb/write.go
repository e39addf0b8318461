package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/dohome-iot/comfort-core/internal/feedback"
)

// WriteFeedbackPoint records one accepted feedback submission.
//
// This is the primary telemetry export: every accepted submission becomes a
// point tagged by store, zone, and feedback value, with the numeric comfort
// reading (-1, 0, +1) as the field. The write is non-blocking; data is
// batched and sent asynchronously.
//
// Parameters:
//   - storeID: Store identifier (e.g., "store-central-rama9")
//   - zoneID: Zone identifier within the store
//   - fb: The submitted feedback value
//   - at: The submission timestamp
//
// Example:
//
//	client.WriteFeedbackPoint("store-central-rama9", "zone-a", feedback.TooHot, time.Now())
func (c *Client) WriteFeedbackPoint(storeID, zoneID string, fb feedback.Type, at time.Time) {
	c.WritePointWithTime(
		"comfort_feedback",
		map[string]string{
			"store_id": storeID,
			"zone_id":  zoneID,
			"feedback": string(fb),
		},
		map[string]interface{}{
			"value": fb.ComfortValue(),
		},
		at,
	)
}

// WriteSlotCompletion records a zone completing one of its daily slots.
//
// Used for participation dashboards: counting points per (zone, date) shows
// how consistently each zone's staff submit across the day's slots.
//
// Parameters:
//   - zoneID: Zone identifier
//   - slotID: The completed slot (e.g., "morning")
//   - date: Civil date of the completion in the reference timezone
//   - at: The completion timestamp
func (c *Client) WriteSlotCompletion(zoneID, slotID, date string, at time.Time) {
	c.WritePointWithTime(
		"slot_completions",
		map[string]string{
			"zone_id": zoneID,
			"slot_id": slotID,
			"date":    date,
		},
		map[string]interface{}{
			"value": 1,
		},
		at,
	)
}

// WritePointWithTime writes a point with a specific timestamp. The typed
// helpers above funnel through here; use it directly only for measurements
// they don't cover.
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
