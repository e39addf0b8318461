package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// minPolygonPoints is the fewest points that can describe a zone region.
const minPolygonPoints = 3

// Catalog is the read-only store/zone configuration.
//
// It is loaded once at startup and never mutated; lookups are therefore
// safe for concurrent use without locking.
type Catalog struct {
	stores []StoreConfig
	byID   map[string]*StoreConfig
}

// catalogFile is the YAML shape of the catalog file.
type catalogFile struct {
	Stores []StoreConfig `yaml:"stores"`
}

// Load reads the store catalog from a YAML file and validates it.
//
// Parameters:
//   - path: Path to the catalog YAML file
//
// Returns:
//   - *Catalog: Validated catalog ready for lookups
//   - error: If the file cannot be read, parsed, or validation fails
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	return New(file.Stores)
}

// New builds a catalog from in-memory store configs and validates it.
// Used directly by tests; Load is the production entry point.
func New(stores []StoreConfig) (*Catalog, error) {
	if err := validateStores(stores); err != nil {
		return nil, err
	}

	c := &Catalog{
		stores: stores,
		byID:   make(map[string]*StoreConfig, len(stores)),
	}
	for i := range c.stores {
		c.byID[c.stores[i].ID] = &c.stores[i]
	}
	return c, nil
}

// Stores returns all stores in catalog order.
func (c *Catalog) Stores() []StoreConfig {
	return c.stores
}

// GetStore looks up a store by id.
//
// A missing id is a first-class not-found condition: callers must surface
// it distinctly (e.g. a 404) rather than treating it as a zone-level state.
//
// Returns:
//   - *StoreConfig: The store when found
//   - error: ErrStoreNotFound when no store with that id exists
func (c *Catalog) GetStore(storeID string) (*StoreConfig, error) {
	store, ok := c.byID[storeID]
	if !ok {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// GetZone looks up a zone within a store.
//
// Returns:
//   - *ZoneConfig: The zone when found
//   - error: ErrStoreNotFound or ErrZoneNotFound
func (c *Catalog) GetZone(storeID, zoneID string) (*ZoneConfig, error) {
	store, err := c.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	zone, ok := store.Zone(zoneID)
	if !ok {
		return nil, ErrZoneNotFound
	}
	return zone, nil
}

// validateStores checks catalog integrity: unique ids, labelled zones,
// and polygons with enough points to describe a region.
func validateStores(stores []StoreConfig) error {
	var errs []string

	storeIDs := make(map[string]struct{}, len(stores))
	for i, store := range stores {
		if store.ID == "" {
			errs = append(errs, fmt.Sprintf("stores[%d].id is required", i))
			continue
		}
		if _, dup := storeIDs[store.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate store id %q", store.ID))
		}
		storeIDs[store.ID] = struct{}{}

		zoneIDs := make(map[string]struct{}, len(store.Zones))
		for j, zone := range store.Zones {
			if zone.ID == "" {
				errs = append(errs, fmt.Sprintf("store %q zones[%d].id is required", store.ID, j))
				continue
			}
			if _, dup := zoneIDs[zone.ID]; dup {
				errs = append(errs, fmt.Sprintf("store %q duplicate zone id %q", store.ID, zone.ID))
			}
			zoneIDs[zone.ID] = struct{}{}

			if zone.Label == "" {
				errs = append(errs, fmt.Sprintf("store %q zone %q label is required", store.ID, zone.ID))
			}
			if len(zone.Polygon) < minPolygonPoints {
				errs = append(errs, fmt.Sprintf("store %q zone %q polygon needs at least %d points",
					store.ID, zone.ID, minPolygonPoints))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
