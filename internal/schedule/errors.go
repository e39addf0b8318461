package schedule

import "errors"

var (
	// ErrNoSlots is returned when a schedule is built with no slot definitions.
	ErrNoSlots = errors.New("schedule requires at least one slot")

	// ErrInvalidSlot is returned when a slot definition is malformed: empty
	// id, hours outside the day, or an empty or inverted window.
	ErrInvalidSlot = errors.New("invalid slot definition")

	// ErrDuplicateSlot is returned when two slots share an id.
	ErrDuplicateSlot = errors.New("duplicate slot id")

	// ErrOverlappingSlots is returned when two slot windows intersect.
	ErrOverlappingSlots = errors.New("slot windows must not overlap")

	// ErrUnknownSlot is returned when a slot id is not part of the schedule.
	ErrUnknownSlot = errors.New("unknown slot id")
)
