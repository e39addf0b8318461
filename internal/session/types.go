package session

import (
	"time"

	"github.com/dohome-iot/comfort-core/internal/feedback"
)

// RejectReason identifies why a submission was turned away. Rejections are
// ordinary result values, never errors: the caller branches on them and may
// rely on a rejected submission having had no side effect.
type RejectReason string

const (
	ReasonCooldownActive    RejectReason = "cooldown_active"
	ReasonNoActiveSlot      RejectReason = "no_active_slot"
	ReasonSlotNotSelectable RejectReason = "slot_not_selectable"
	ReasonSlotCompleted     RejectReason = "slot_completed"
	ReasonStorageFailed     RejectReason = "storage_failed"
)

// Result is the outcome of a submission attempt.
type Result struct {
	Accepted bool            `json:"accepted"`
	Reason   RejectReason    `json:"reason,omitempty"`
	Entry    *feedback.Entry `json:"entry,omitempty"`

	// Cooldown is the remaining wait after this attempt, in either outcome:
	// the fresh window on acceptance, the outstanding remainder on a
	// cooldown rejection.
	Cooldown time.Duration `json:"-"`

	// SlotID is the slot credited on acceptance under the slot policy.
	SlotID string `json:"slot_id,omitempty"`
}

// ZoneState is the cached interactive state for one zone.
type ZoneState struct {
	StoreID      string        `json:"store_id"`
	ZoneID       string        `json:"zone_id"`
	LastFeedback feedback.Type `json:"last_feedback,omitempty"`
	Cooldown     time.Duration `json:"-"`
}

// CooldownMS exposes the cooldown for JSON payloads in milliseconds,
// matching what countdown UIs consume.
func (z ZoneState) CooldownMS() int64 {
	return z.Cooldown.Milliseconds()
}

// Phase is the slot-policy state machine position for a zone.
type Phase string

const (
	// PhaseNoActiveSlot: no slot window is open right now.
	PhaseNoActiveSlot Phase = "no_active_slot"

	// PhaseAwaitingSubmission: a slot is open and not yet completed.
	PhaseAwaitingSubmission Phase = "awaiting_submission"

	// PhaseCompleted: the currently open slot is already completed.
	PhaseCompleted Phase = "completed"

	// PhaseDayComplete: every slot is completed; terminal until midnight
	// in the reference timezone.
	PhaseDayComplete Phase = "day_complete"
)

// Progress summarises a zone's slot completion for today.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}
