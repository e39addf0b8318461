package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dohome-iot/comfort-core/internal/catalog"
	"github.com/dohome-iot/comfort-core/internal/feedback"
	"github.com/dohome-iot/comfort-core/internal/session"
)

// ZoneStateResponse is the interactive state the kiosk renders for a zone.
type ZoneStateResponse struct {
	StoreID             string           `json:"store_id"`
	ZoneID              string           `json:"zone_id"`
	LastFeedback        string           `json:"last_feedback,omitempty"`
	CooldownRemainingMS int64            `json:"cooldown_remaining_ms"`
	Phase               session.Phase    `json:"phase"`
	Progress            session.Progress `json:"progress"`
	NextSlotTime        string           `json:"next_slot_time,omitempty"`
}

// SubmitRequest is the body for POST feedback submissions.
type SubmitRequest struct {
	Feedback string `json:"feedback"`
	SlotID   string `json:"slot_id,omitempty"`
}

// SubmitResponse is the outcome of a submission attempt. Rejections use the
// same shape with Accepted false and a machine-readable reason; HTTP errors
// are reserved for malformed requests and unknown zones.
type SubmitResponse struct {
	Accepted            bool            `json:"accepted"`
	Reason              string          `json:"reason,omitempty"`
	Entry               *feedback.Entry `json:"entry,omitempty"`
	SlotID              string          `json:"slot_id,omitempty"`
	CooldownRemainingMS int64           `json:"cooldown_remaining_ms"`
}

// resolveZone validates the (store, zone) pair against the catalog, writing
// the appropriate 404 on failure.
func (s *Server) resolveZone(w http.ResponseWriter, storeID, zoneID string) bool {
	if _, err := s.catalog.GetZone(storeID, zoneID); err != nil {
		if errors.Is(err, catalog.ErrStoreNotFound) {
			writeNotFound(w, "store not found: "+storeID)
		} else {
			writeNotFound(w, "zone not found: "+zoneID)
		}
		return false
	}
	return true
}

// zoneStateResponse assembles the render state for one zone.
func (s *Server) zoneStateResponse(r *http.Request, storeID, zoneID string) ZoneStateResponse {
	resp := ZoneStateResponse{
		StoreID:  storeID,
		ZoneID:   zoneID,
		Phase:    s.controller.ZonePhase(r.Context(), zoneID),
		Progress: s.controller.Progress(r.Context(), zoneID),
	}

	if state, ok := s.controller.ZoneState(storeID, zoneID); ok {
		resp.LastFeedback = string(state.LastFeedback)
		resp.CooldownRemainingMS = state.CooldownMS()
	}

	if next, ok := s.controller.NextSlotDisplay(); ok {
		resp.NextSlotTime = next
	}

	return resp
}

// handleListZoneStates returns the interactive state for every zone of a store.
func (s *Server) handleListZoneStates(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	store, err := s.catalog.GetStore(storeID)
	if err != nil {
		writeNotFound(w, "store not found: "+storeID)
		return
	}

	states := make([]ZoneStateResponse, 0, len(store.Zones))
	for _, zone := range store.Zones {
		states = append(states, s.zoneStateResponse(r, storeID, zone.ID))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"store_id": storeID,
		"states":   states,
	})
}

// handleGetZoneState returns the interactive state for one zone.
func (s *Server) handleGetZoneState(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	zoneID := chi.URLParam(r, "zoneID")

	if !s.resolveZone(w, storeID, zoneID) {
		return
	}

	writeJSON(w, http.StatusOK, s.zoneStateResponse(r, storeID, zoneID))
}

// handleSubmitFeedback records a feedback submission for a zone.
//
// The response is always a SubmitResponse: eligibility rejections (cooldown
// running, no open slot, slot already completed) come back with HTTP 200 and
// Accepted false so the kiosk can branch on the reason.
func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	zoneID := chi.URLParam(r, "zoneID")

	if !s.resolveZone(w, storeID, zoneID) {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if !feedback.ValidType(req.Feedback) {
		writeBadRequest(w, "feedback must be one of: too_hot, comfort, too_cold")
		return
	}

	result, err := s.controller.Submit(r.Context(), storeID, zoneID, req.SlotID, feedback.Type(req.Feedback))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{
		Accepted:            result.Accepted,
		Reason:              string(result.Reason),
		Entry:               result.Entry,
		SlotID:              result.SlotID,
		CooldownRemainingMS: result.Cooldown.Milliseconds(),
	})
}

// handleListFeedback returns the retained feedback log in insertion order,
// for dashboards and export pipelines.
func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Entries(r.Context())
	if err != nil {
		// Degraded log reads as empty rather than failing the dashboard.
		entries = nil
	}
	if entries == nil {
		entries = []feedback.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
