package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dohome-iot/comfort-core/internal/catalog"
)

// StoreSummary is the list representation of a store.
type StoreSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ZoneCount int    `json:"zone_count"`
}

// handleListStores returns all configured stores.
func (s *Server) handleListStores(w http.ResponseWriter, _ *http.Request) {
	stores := s.catalog.Stores()

	summaries := make([]StoreSummary, 0, len(stores))
	for _, store := range stores {
		summaries = append(summaries, StoreSummary{
			ID:        store.ID,
			Name:      store.Name,
			ZoneCount: len(store.Zones),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stores": summaries,
		"count":  len(summaries),
	})
}

// handleGetStore returns one store with its full zone layout, including the
// floor plan reference and zone polygons the kiosk UI renders.
func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	store, err := s.catalog.GetStore(storeID)
	if err != nil {
		writeNotFound(w, "store not found: "+storeID)
		return
	}

	writeJSON(w, http.StatusOK, store)
}

// handleGetZone returns one zone's catalog entry.
func (s *Server) handleGetZone(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	zoneID := chi.URLParam(r, "zoneID")

	zone, err := s.catalog.GetZone(storeID, zoneID)
	if err != nil {
		// Unknown store and unknown zone are distinct failures; the kiosk
		// shows different recovery hints for each.
		if errors.Is(err, catalog.ErrStoreNotFound) {
			writeNotFound(w, "store not found: "+storeID)
			return
		}
		writeNotFound(w, "zone not found: "+zoneID)
		return
	}

	writeJSON(w, http.StatusOK, zone)
}
