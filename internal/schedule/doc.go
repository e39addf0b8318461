// Package schedule provides the fixed daily time-slot logic and the
// per-zone completion log.
//
// A deployment has a small fixed set of named slots (Morning, Afternoon,
// Evening by default), each a half-open [start, end) hour window on the
// reference timezone's clock. Gaps between windows are legal and mean "no
// active round".
//
// Everything time-derived here is a pure function of the instant passed
// in: "current slot" and "today" are recomputed from the reference
// timezone on every call rather than maintained by midnight timers.
// Callers poll; this package never schedules anything itself.
package schedule
