package catalog

// Point is a single 2-D coordinate in floor-plan viewBox space (0-100).
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// ZoneConfig describes one delineated region of a store's floor plan.
// Zones are independently trackable for comfort feedback.
type ZoneConfig struct {
	ID      string  `yaml:"id" json:"id"`
	Label   string  `yaml:"label" json:"label"`
	AHUID   string  `yaml:"ahu_id" json:"ahu_id"`
	Polygon []Point `yaml:"polygon" json:"polygon"`
}

// StoreConfig describes one retail store and its feedback zones.
type StoreConfig struct {
	ID        string       `yaml:"id" json:"id"`
	Name      string       `yaml:"name" json:"name"`
	FloorPlan string       `yaml:"floor_plan" json:"floor_plan"`
	Zones     []ZoneConfig `yaml:"zones" json:"zones"`
}

// ZoneIDs returns the ids of all zones in the store, in catalog order.
func (s *StoreConfig) ZoneIDs() []string {
	ids := make([]string, 0, len(s.Zones))
	for _, z := range s.Zones {
		ids = append(ids, z.ID)
	}
	return ids
}

// Zone looks up a zone by id within the store.
//
// Returns:
//   - *ZoneConfig: The zone when found
//   - bool: false when no zone with that id exists
func (s *StoreConfig) Zone(zoneID string) (*ZoneConfig, bool) {
	for i := range s.Zones {
		if s.Zones[i].ID == zoneID {
			return &s.Zones[i], true
		}
	}
	return nil, false
}
