// Package session implements the interactive feedback session layer: the
// stateful controller that sits between the persisted feedback log, the
// slot schedule, and the rendering surface.
//
// The controller caches per-zone state (last feedback, cooldown remaining)
// so render reads never touch storage, and refreshes the cooldowns on a
// fixed tick. Writes never trust the cache: every Submit re-checks
// eligibility against the persisted log at call time, so cached staleness
// can only ever delay a submission, never sneak one through.
//
// Eligibility itself is pluggable through the Policy interface. Two
// policies ship: CooldownPolicy, which rate-limits each zone to one
// submission per rolling window, and SlotPolicy, which restricts
// submission to scheduled daily time slots and credits a completion record
// on acceptance. The controller is identical under both; only the policy
// and the meaning of a rejection differ.
package session
