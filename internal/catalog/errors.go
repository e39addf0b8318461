package catalog

import "errors"

var (
	// ErrStoreNotFound is returned when a store id does not exist in the catalog.
	ErrStoreNotFound = errors.New("store not found")

	// ErrZoneNotFound is returned when a zone id does not exist within a store.
	ErrZoneNotFound = errors.New("zone not found")
)
