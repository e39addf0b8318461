package session

import (
	"context"
	"time"

	"github.com/dohome-iot/comfort-core/internal/feedback"
	"github.com/dohome-iot/comfort-core/internal/schedule"
)

// Policy decides whether a zone may accept a submission right now.
//
// The two variants are deployment alternatives, not parallel code paths in
// callers: the controller holds exactly one Policy and is indifferent to
// which it is.
type Policy interface {
	// Name identifies the policy variant ("cooldown" or "slot").
	Name() string

	// Evaluate checks eligibility at the given instant.
	//
	// slotID is the caller's explicit slot choice, or empty to use the
	// currently active slot; the cooldown variant ignores it.
	//
	// Returns the resolved slot id to credit on acceptance (empty for the
	// cooldown variant) and a rejection reason (empty when eligible).
	Evaluate(ctx context.Context, storeID, zoneID, slotID string, now time.Time) (resolvedSlot string, reason RejectReason)
}

// CooldownPolicy allows a new submission for a zone once the cooldown
// window has elapsed since its last accepted one, independent of the slot
// schedule.
type CooldownPolicy struct {
	store  feedback.Store
	window time.Duration
}

// NewCooldownPolicy creates the cooldown eligibility variant.
func NewCooldownPolicy(store feedback.Store, window time.Duration) *CooldownPolicy {
	return &CooldownPolicy{store: store, window: window}
}

// Name implements Policy.
func (p *CooldownPolicy) Name() string { return "cooldown" }

// Evaluate implements Policy. The check reads the log at call time rather
// than trusting any cached cooldown the caller may hold.
func (p *CooldownPolicy) Evaluate(ctx context.Context, storeID, zoneID, _ string, now time.Time) (string, RejectReason) {
	if p.store.CooldownRemaining(ctx, storeID, zoneID, now, p.window) > 0 {
		return "", ReasonCooldownActive
	}
	return "", ""
}

// SlotPolicy allows a zone at most one submission per (zone, slot, day)
// triple: a slot must be open (or explicitly selected while open) and not
// already completed today.
type SlotPolicy struct {
	schedule    *schedule.Schedule
	completions schedule.CompletionStore
}

// NewSlotPolicy creates the slot-based eligibility variant.
func NewSlotPolicy(sched *schedule.Schedule, completions schedule.CompletionStore) *SlotPolicy {
	return &SlotPolicy{schedule: sched, completions: completions}
}

// Name implements Policy.
func (p *SlotPolicy) Name() string { return "slot" }

// Evaluate implements Policy.
func (p *SlotPolicy) Evaluate(ctx context.Context, _, zoneID, slotID string, now time.Time) (string, RejectReason) {
	if slotID == "" {
		current, ok := p.schedule.CurrentSlot(now)
		if !ok {
			return "", ReasonNoActiveSlot
		}
		slotID = current.ID
	} else if !p.schedule.IsSelectable(slotID, now) {
		// Covers unknown slots, slots not yet open, and slots whose
		// window has passed.
		return "", ReasonSlotNotSelectable
	}

	date := p.schedule.DateString(now)
	done, err := p.completions.CompletedOn(ctx, zoneID, date)
	if err != nil {
		// Degraded completion reads err on the side of allowing the
		// submission; the store already logs the failure.
		return slotID, ""
	}
	if _, completed := done[slotID]; completed {
		return "", ReasonSlotCompleted
	}

	return slotID, ""
}
