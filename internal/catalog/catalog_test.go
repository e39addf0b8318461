package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testStores() []StoreConfig {
	return []StoreConfig{
		{
			ID:        "s1",
			Name:      "Phuket",
			FloorPlan: "/assets/floor-plans/phuket.png",
			Zones: []ZoneConfig{
				{
					ID:    "zone-1a",
					Label: "1A",
					AHUID: "ahu_1",
					Polygon: []Point{
						{X: 22, Y: 69.25}, {X: 53.5, Y: 69.25}, {X: 53.5, Y: 77}, {X: 22, Y: 77},
					},
				},
				{
					ID:    "zone-1b",
					Label: "1B",
					AHUID: "ahu_1",
					Polygon: []Point{
						{X: 53.5, Y: 69.25}, {X: 85, Y: 69.25}, {X: 85, Y: 77}, {X: 53.5, Y: 77},
					},
				},
			},
		},
	}
}

func TestNew_Valid(t *testing.T) {
	c, err := New(testStores())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(c.Stores()) != 1 {
		t.Errorf("Stores() len = %d, want 1", len(c.Stores()))
	}
}

func TestGetStore(t *testing.T) {
	c, err := New(testStores())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	store, err := c.GetStore("s1")
	if err != nil {
		t.Fatalf("GetStore() error = %v", err)
	}
	if store.Name != "Phuket" {
		t.Errorf("store.Name = %q, want Phuket", store.Name)
	}
	if got := store.ZoneIDs(); len(got) != 2 || got[0] != "zone-1a" {
		t.Errorf("ZoneIDs() = %v, want [zone-1a zone-1b]", got)
	}
}

func TestGetStore_NotFound(t *testing.T) {
	c, err := New(testStores())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.GetStore("nope"); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("GetStore() error = %v, want ErrStoreNotFound", err)
	}
}

func TestGetZone(t *testing.T) {
	c, err := New(testStores())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	zone, err := c.GetZone("s1", "zone-1b")
	if err != nil {
		t.Fatalf("GetZone() error = %v", err)
	}
	if zone.AHUID != "ahu_1" {
		t.Errorf("zone.AHUID = %q, want ahu_1", zone.AHUID)
	}

	if _, err := c.GetZone("s1", "zone-9z"); !errors.Is(err, ErrZoneNotFound) {
		t.Errorf("GetZone() error = %v, want ErrZoneNotFound", err)
	}
	if _, err := c.GetZone("nope", "zone-1a"); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("GetZone() error = %v, want ErrStoreNotFound", err)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]StoreConfig) []StoreConfig
	}{
		{"missing store id", func(s []StoreConfig) []StoreConfig {
			s[0].ID = ""
			return s
		}},
		{"duplicate store id", func(s []StoreConfig) []StoreConfig {
			return append(s, s[0])
		}},
		{"missing zone id", func(s []StoreConfig) []StoreConfig {
			s[0].Zones[0].ID = ""
			return s
		}},
		{"duplicate zone id", func(s []StoreConfig) []StoreConfig {
			s[0].Zones[1].ID = s[0].Zones[0].ID
			return s
		}},
		{"missing zone label", func(s []StoreConfig) []StoreConfig {
			s[0].Zones[0].Label = ""
			return s
		}},
		{"degenerate polygon", func(s []StoreConfig) []StoreConfig {
			s[0].Zones[0].Polygon = []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.mutate(testStores())); err == nil {
				t.Error("New() expected validation error, got nil")
			}
		})
	}
}

func TestLoad_FromYAML(t *testing.T) {
	content := `
stores:
  - id: "s1"
    name: "Phuket"
    floor_plan: "/assets/phuket.png"
    zones:
      - id: "zone-1a"
        label: "1A"
        ahu_id: "ahu_1"
        polygon:
          - {x: 22, y: 9}
          - {x: 53.5, y: 9}
          - {x: 53.5, y: 16.75}
          - {x: 22, y: 16.75}
`
	path := filepath.Join(t.TempDir(), "stores.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	zone, err := c.GetZone("s1", "zone-1a")
	if err != nil {
		t.Fatalf("GetZone() error = %v", err)
	}
	if len(zone.Polygon) != 4 || zone.Polygon[1].X != 53.5 {
		t.Errorf("polygon = %v, want 4 points with second x=53.5", zone.Polygon)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/stores.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}
