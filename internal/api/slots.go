package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dohome-iot/comfort-core/internal/schedule"
)

// SlotInfo is a slot definition with its window rendered for clients.
type SlotInfo struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// ZoneSlotStatus is one slot's standing for a zone today.
type ZoneSlotStatus struct {
	SlotInfo
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
}

// handleListSlots returns the daily slot schedule.
func (s *Server) handleListSlots(w http.ResponseWriter, _ *http.Request) {
	slots := s.schedule.Slots()

	infos := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		infos = append(infos, slotInfo(slot))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"slots":    infos,
		"timezone": s.schedule.Location().String(),
	})
}

// handleZoneSlots returns today's slot standing for one zone: which slots
// are completed, which is open, and the overall progress and phase.
func (s *Server) handleZoneSlots(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	zoneID := chi.URLParam(r, "zoneID")

	if !s.resolveZone(w, storeID, zoneID) {
		return
	}

	done := s.controller.CompletedToday(r.Context(), zoneID)
	active, hasActive := s.controller.ActiveSlot()

	statuses := make([]ZoneSlotStatus, 0, len(s.schedule.Slots()))
	for _, slot := range s.schedule.Slots() {
		_, completed := done[slot.ID]
		statuses = append(statuses, ZoneSlotStatus{
			SlotInfo:  slotInfo(slot),
			Active:    hasActive && slot.ID == active.ID,
			Completed: completed,
		})
	}

	resp := map[string]any{
		"zone_id":  zoneID,
		"slots":    statuses,
		"progress": s.controller.Progress(r.Context(), zoneID),
		"phase":    s.controller.ZonePhase(r.Context(), zoneID),
	}
	if next, ok := s.controller.NextSlotDisplay(); ok {
		resp["next_slot_time"] = next
	}

	writeJSON(w, http.StatusOK, resp)
}

func slotInfo(slot schedule.TimeSlot) SlotInfo {
	return SlotInfo{
		ID:        slot.ID,
		Label:     slot.Label,
		StartHour: slot.StartHour,
		EndHour:   slot.EndHour,
	}
}
