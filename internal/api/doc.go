// Package api implements the HTTP REST API and WebSocket server for Comfort Core.
//
// This package provides:
//   - REST endpoints for the store catalog, zone states, and feedback submission
//   - Slot schedule and completion progress endpoints
//   - WebSocket hub for real-time zone state and slot event broadcasts
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server sits between the in-store kiosk/tablet surfaces and the
// session controller. Submissions flow through the controller (which enforces
// the active eligibility policy and persists accepted entries); state changes
// flow back to connected clients through the WebSocket hub.
//
// # Security
//
// Endpoints are unauthenticated: the service is reachable only on the store's
// internal network, and submissions are anonymous per zone. TLS can be
// enabled for transport privacy.
//
// # Graceful Degradation
//
// Reads degrade rather than fail: a broken feedback log reads as empty, and
// the submission endpoint reports storage failures as structured rejections
// instead of 5xx responses.
package api
