// Package catalog provides the static store and zone configuration.
//
// The catalog is the read-only description of each retail store's floor
// plan: which zones exist, their display labels, the air-handling unit
// serving them, and the polygon outlining each zone on the plan.
//
// It is owned by configuration, loaded once at startup, and never written
// at runtime. Feedback submissions reference store and zone ids but are
// not validated against the catalog at write time; only the API surface
// resolves ids through it, surfacing not-found as a distinct condition.
package catalog
