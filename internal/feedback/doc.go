// Package feedback provides the append-only event log of comfort submissions.
//
// The log is the single durable record of "someone said this zone felt
// too hot / comfortable / too cold". It is capped system-wide: past the
// cap, the oldest entries are trimmed regardless of which zone they
// belong to. A busy store will therefore evict quieter zones' history
// first; this is an accepted trade-off of simplicity over fairness.
//
// The store owns the persisted collection exclusively. Other components
// derive state from it (latest value per zone, cooldown remaining) but
// never mutate it directly.
//
// # Degraded reads
//
// Storage unavailability or corruption degrades every read to an empty
// log rather than propagating an error. The log is a best-effort local
// record; the session surface must keep working without it.
package feedback
