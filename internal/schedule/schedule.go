package schedule

import (
	"fmt"
	"sort"
	"time"
)

// dateFormat is the civil date encoding used for completion records.
const dateFormat = "2006-01-02"

// Schedule maps wall-clock time onto the fixed daily slots.
//
// All derivations ("current hour", "today") convert the given instant into
// the reference timezone on every call. There is no cached midnight
// rollover: staleness is bounded by how often callers re-invoke, which is
// the controller's poll interval.
//
// Thread Safety: a Schedule is immutable after New and safe for concurrent use.
type Schedule struct {
	slots []TimeSlot
	byID  map[string]TimeSlot
	loc   *time.Location
}

// New builds a schedule from slot definitions, sorted by start hour.
//
// Parameters:
//   - slots: Slot windows; must be non-empty and non-overlapping
//   - loc: The reference civil timezone for all derivations
//
// Returns:
//   - *Schedule: Immutable schedule ready for use
//   - error: ErrNoSlots, ErrInvalidSlot, ErrDuplicateSlot, or
//     ErrOverlappingSlots on bad definitions
func New(slots []TimeSlot, loc *time.Location) (*Schedule, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartHour < sorted[j].StartHour
	})

	byID := make(map[string]TimeSlot, len(sorted))
	for i, s := range sorted {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidSlot)
		}
		if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 1 || s.EndHour > 24 {
			return nil, fmt.Errorf("%w: %q hours out of range", ErrInvalidSlot, s.ID)
		}
		if s.StartHour >= s.EndHour {
			return nil, fmt.Errorf("%w: %q window is empty or inverted", ErrInvalidSlot, s.ID)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlot, s.ID)
		}
		if i > 0 && s.StartHour < sorted[i-1].EndHour {
			return nil, fmt.Errorf("%w: %q and %q", ErrOverlappingSlots, sorted[i-1].ID, s.ID)
		}
		byID[s.ID] = s
	}

	return &Schedule{slots: sorted, byID: byID, loc: loc}, nil
}

// Slots returns the slot windows in start-hour order.
func (s *Schedule) Slots() []TimeSlot {
	out := make([]TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// SlotByID looks up a slot definition.
//
// Returns:
//   - TimeSlot: The slot when found
//   - error: ErrUnknownSlot when the id is not part of the schedule
func (s *Schedule) SlotByID(slotID string) (TimeSlot, error) {
	slot, ok := s.byID[slotID]
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slotID)
	}
	return slot, nil
}

// CurrentSlot returns the slot whose window contains now's hour in the
// reference timezone, or ok=false when the hour falls in a gap (before the
// first slot, between slots, or after the last).
func (s *Schedule) CurrentSlot(now time.Time) (TimeSlot, bool) {
	hour := now.In(s.loc).Hour()
	for _, slot := range s.slots {
		if slot.Contains(hour) {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// NextSlot returns the earliest slot whose start hour is strictly greater
// than now's hour, or ok=false when none remain today. There is no
// wraparound to tomorrow's first slot.
func (s *Schedule) NextSlot(now time.Time) (TimeSlot, bool) {
	hour := now.In(s.loc).Hour()
	for _, slot := range s.slots {
		if slot.StartHour > hour {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// NextSlotTime returns a 12-hour display label for the next slot's start
// (e.g. "1:00 PM"), or ok=false when no slot remains today.
func (s *Schedule) NextSlotTime(now time.Time) (string, bool) {
	next, ok := s.NextSlot(now)
	if !ok {
		return "", false
	}

	h := next.StartHour
	display := h
	if h > 12 {
		display = h - 12
	}
	if display == 0 {
		display = 12
	}
	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, meridiem), true
}

// IsSelectable reports whether a slot may be manually chosen right now.
// Only the currently active slot is selectable: a slot cannot be picked
// before its window opens or after it has passed.
func (s *Schedule) IsSelectable(slotID string, now time.Time) bool {
	current, ok := s.CurrentSlot(now)
	return ok && current.ID == slotID
}

// DateString returns now's civil date in the reference timezone, encoded
// as YYYY-MM-DD. This is the "today" used for completion queries.
func (s *Schedule) DateString(now time.Time) string {
	return now.In(s.loc).Format(dateFormat)
}

// Location returns the reference timezone.
func (s *Schedule) Location() *time.Location {
	return s.loc
}
