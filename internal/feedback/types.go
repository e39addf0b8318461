package feedback

import "time"

// Type is a visitor's thermal comfort verdict for a zone.
type Type string

const (
	TooHot  Type = "too_hot"
	Comfort Type = "comfort"
	TooCold Type = "too_cold"
)

// AllTypes returns all valid feedback values.
func AllTypes() []Type {
	return []Type{TooHot, Comfort, TooCold}
}

// validTypes is a pre-computed set for O(1) validation.
var validTypes = func() map[Type]struct{} {
	m := make(map[Type]struct{}, len(AllTypes()))
	for _, t := range AllTypes() {
		m[t] = struct{}{}
	}
	return m
}()

// ValidType checks whether the given string is a valid feedback value.
func ValidType(s string) bool {
	_, ok := validTypes[Type(s)]
	return ok
}

// ComfortValue maps a feedback value onto a signed scale for telemetry:
// too_cold = -1, comfort = 0, too_hot = +1.
func (t Type) ComfortValue() float64 {
	switch t {
	case TooHot:
		return 1
	case TooCold:
		return -1
	default:
		return 0
	}
}

// Entry is one recorded comfort submission. Entries are immutable once
// written; the log is append-only except for oldest-first trimming when
// the system-wide cap is exceeded.
type Entry struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	ZoneID    string    `json:"zone_id"`
	Feedback  Type      `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}
