package schedule

import "time"

// Canonical slot ids for the default daily schedule.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// TimeSlot is one named daily window, half-open [StartHour, EndHour) on the
// reference timezone's 24-hour clock. Slots are defined once at startup and
// never mutated.
type TimeSlot struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// Contains reports whether the given hour falls inside the slot window.
// The start hour is inclusive, the end hour exclusive.
func (s TimeSlot) Contains(hour int) bool {
	return hour >= s.StartHour && hour < s.EndHour
}

// DefaultSlots returns the built-in daily schedule: Morning [9,12),
// Afternoon [13,16), Evening [16,19). The gap at hour 12 is deliberate;
// it represents "no active round" over the lunch window.
func DefaultSlots() []TimeSlot {
	return []TimeSlot{
		{ID: SlotMorning, Label: "Morning", StartHour: 9, EndHour: 12},
		{ID: SlotAfternoon, Label: "Afternoon", StartHour: 13, EndHour: 16},
		{ID: SlotEvening, Label: "Evening", StartHour: 16, EndHour: 19},
	}
}

// CompletionRecord is one "this zone finished this time slot today" fact.
//
// Date holds the civil date in the reference timezone (not UTC), so
// records silently age out of "today" queries at local midnight without
// any deletion.
type CompletionRecord struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	ZoneID    string    `json:"zone_id"`
	SlotID    string    `json:"slot_id"`
	Timestamp time.Time `json:"timestamp"`
}
