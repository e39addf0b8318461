package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dohome-iot/comfort-core/internal/feedback"
	"github.com/dohome-iot/comfort-core/internal/infrastructure/mqtt"
	"github.com/dohome-iot/comfort-core/internal/schedule"
)

// topics builds bus topic names; the mqtt package owns the naming scheme.
var topics mqtt.Topics

// Broadcast channels emitted to observers.
const (
	ChannelZoneState     = "zone.state_changed"
	ChannelSlotCompleted = "slot.completed"
	ChannelSlotReminder  = "slot.reminder"
)

// Notifier is the interface for broadcasting state-change events to
// observers (the WebSocket hub).
type Notifier interface {
	// Broadcast sends an event to all clients subscribed to the channel.
	Broadcast(channel string, payload any)
}

// BusPublisher is the interface for relaying accepted events to the
// building-management bus.
type BusPublisher interface {
	// Publish sends a message to the specified MQTT topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// TelemetryWriter exports accepted events as time-series points.
type TelemetryWriter interface {
	WriteFeedbackPoint(storeID, zoneID string, fb feedback.Type, at time.Time)
	WriteSlotCompletion(zoneID, slotID, date string, at time.Time)
}

// Logger is the minimal logging interface the controller needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// zoneKey identifies one tracked zone across stores.
type zoneKey struct {
	storeID string
	zoneID  string
}

// Deps holds the dependencies required by the session controller.
type Deps struct {
	Store       feedback.Store
	Schedule    *schedule.Schedule
	Completions schedule.CompletionStore
	Policy      Policy
	Window      time.Duration // cooldown window for accepted submissions
	Tick        time.Duration // cooldown refresh interval
	Clock       func() time.Time
	Notifier    Notifier        // may be nil
	Bus         BusPublisher    // may be nil
	Telemetry   TelemetryWriter // may be nil
	Logger      Logger
}

// Controller is the stateful glue between the feedback log, the slot
// scheduler, and the interactive surface. It is the single component that
// both reads history and writes new entries.
//
// Cached zone state exists purely to make render reads cheap; every
// Submit re-checks eligibility against the persisted log at call time.
// Across concurrently open sessions the log is shared with no locking, so
// two processes can both pass the check and both append: weak consistency
// is an accepted property, not a bug to paper over here.
//
// Thread Safety: all methods are safe for concurrent use.
type Controller struct {
	store       feedback.Store
	sched       *schedule.Schedule
	completions schedule.CompletionStore
	policy      Policy
	window      time.Duration
	tick        time.Duration
	now         func() time.Time
	notifier    Notifier
	bus         BusPublisher
	telemetry   TelemetryWriter
	logger      Logger

	mu     sync.RWMutex
	states map[zoneKey]*ZoneState
}

// New creates a session controller.
//
// Returns:
//   - *Controller: Controller ready for LoadState and Run
//   - error: If required dependencies are missing
func New(deps Deps) (*Controller, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("feedback store is required")
	}
	if deps.Schedule == nil {
		return nil, fmt.Errorf("schedule is required")
	}
	if deps.Completions == nil {
		return nil, fmt.Errorf("completion store is required")
	}
	if deps.Policy == nil {
		return nil, fmt.Errorf("eligibility policy is required")
	}
	if deps.Window <= 0 {
		return nil, fmt.Errorf("cooldown window must be positive")
	}
	if deps.Tick <= 0 {
		deps.Tick = time.Second
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}

	return &Controller{
		store:       deps.Store,
		sched:       deps.Schedule,
		completions: deps.Completions,
		policy:      deps.Policy,
		window:      deps.Window,
		tick:        deps.Tick,
		now:         deps.Clock,
		notifier:    deps.Notifier,
		bus:         deps.Bus,
		telemetry:   deps.Telemetry,
		logger:      deps.Logger,
	}, nil
}

// LoadState populates cached state for a store's zones from the event log.
// Called once when the zone set for a store becomes known; calling it
// again re-reads from the log and replaces the cached values.
func (c *Controller) LoadState(ctx context.Context, storeID string, zoneIDs []string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.states == nil {
		c.states = make(map[zoneKey]*ZoneState)
	}

	for _, zoneID := range zoneIDs {
		state := &ZoneState{StoreID: storeID, ZoneID: zoneID}
		if fb, ok := c.store.LatestFor(ctx, storeID, zoneID); ok {
			state.LastFeedback = fb
		}
		state.Cooldown = c.store.CooldownRemaining(ctx, storeID, zoneID, now, c.window)
		c.states[zoneKey{storeID, zoneID}] = state
	}

	c.logger.Debug("session state loaded", "store_id", storeID, "zones", len(zoneIDs))
}

// Tick refreshes cooldown remaining for every tracked zone that still has
// one running. Zones already at zero are left untouched, which makes the
// idle path a cheap no-op.
func (c *Controller) Tick(ctx context.Context) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, state := range c.states {
		if state.Cooldown <= 0 {
			continue
		}
		state.Cooldown = c.store.CooldownRemaining(ctx, key.storeID, key.zoneID, now, c.window)
	}
}

// Run drives Tick on the configured interval until the context is
// cancelled. The ticker is released on return.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Submit attempts to record feedback for a zone.
//
// Eligibility is re-checked against the persisted log at call time, not
// against possibly stale cached state. A rejected submission is guaranteed
// to have appended nothing.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - storeID, zoneID: Target zone
//   - slotID: Explicit slot choice, or empty for the currently active slot
//     (ignored by the cooldown policy)
//   - fb: Feedback value
//
// Returns:
//   - Result: Accepted flag, rejection reason, recorded entry, cooldown
//   - error: Only for malformed input (unknown feedback value, missing ids);
//     policy rejections are carried in the Result, never here
func (c *Controller) Submit(ctx context.Context, storeID, zoneID, slotID string, fb feedback.Type) (Result, error) {
	if storeID == "" || zoneID == "" {
		return Result{}, feedback.ErrMissingKeys
	}
	if !feedback.ValidType(string(fb)) {
		return Result{}, fmt.Errorf("%w: %q", feedback.ErrInvalidType, fb)
	}

	now := c.now()

	resolvedSlot, reason := c.policy.Evaluate(ctx, storeID, zoneID, slotID, now)
	if reason != "" {
		return Result{
			Accepted: false,
			Reason:   reason,
			Cooldown: c.store.CooldownRemaining(ctx, storeID, zoneID, now, c.window),
		}, nil
	}

	entry, err := c.store.Append(ctx, storeID, zoneID, fb)
	if err != nil {
		// The log is best-effort local storage: a failed write is reported
		// as a rejection rather than crashing the session surface.
		c.logger.Error("feedback append failed", "store_id", storeID, "zone_id", zoneID, "error", err)
		return Result{Accepted: false, Reason: ReasonStorageFailed}, nil
	}

	if resolvedSlot != "" {
		date := c.sched.DateString(now)
		if err := c.completions.MarkDone(ctx, zoneID, resolvedSlot, date, now); err != nil {
			c.logger.Error("slot completion write failed",
				"zone_id", zoneID, "slot_id", resolvedSlot, "error", err)
		} else {
			c.broadcastSlotCompleted(storeID, zoneID, resolvedSlot, date, now)
		}
	}

	c.updateState(storeID, zoneID, fb)
	c.publishFeedback(entry)
	if c.telemetry != nil {
		c.telemetry.WriteFeedbackPoint(storeID, zoneID, fb, entry.Timestamp)
	}

	c.logger.Info("feedback accepted",
		"store_id", storeID,
		"zone_id", zoneID,
		"feedback", string(fb),
		"policy", c.policy.Name(),
	)

	return Result{
		Accepted: true,
		Entry:    entry,
		Cooldown: c.window,
		SlotID:   resolvedSlot,
	}, nil
}

// updateState refreshes the cached zone state after an accepted submission
// and notifies observers.
func (c *Controller) updateState(storeID, zoneID string, fb feedback.Type) {
	key := zoneKey{storeID, zoneID}

	c.mu.Lock()
	if c.states == nil {
		c.states = make(map[zoneKey]*ZoneState)
	}
	state, ok := c.states[key]
	if !ok {
		state = &ZoneState{StoreID: storeID, ZoneID: zoneID}
		c.states[key] = state
	}
	state.LastFeedback = fb
	state.Cooldown = c.window
	snapshot := *state
	c.mu.Unlock()

	if c.notifier != nil {
		c.notifier.Broadcast(ChannelZoneState, map[string]any{
			"store_id":              snapshot.StoreID,
			"zone_id":               snapshot.ZoneID,
			"last_feedback":         string(snapshot.LastFeedback),
			"cooldown_remaining_ms": snapshot.CooldownMS(),
		})
	}
}

// broadcastSlotCompleted notifies observers, the bus, and telemetry of a
// slot completion.
func (c *Controller) broadcastSlotCompleted(storeID, zoneID, slotID, date string, at time.Time) {
	payload := map[string]any{
		"store_id": storeID,
		"zone_id":  zoneID,
		"slot_id":  slotID,
		"date":     date,
	}
	if c.notifier != nil {
		c.notifier.Broadcast(ChannelSlotCompleted, payload)
	}
	if c.bus != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			topic := topics.SlotCompleted(storeID, zoneID)
			if pubErr := c.bus.Publish(topic, data, 1, false); pubErr != nil {
				c.logger.Warn("slot completion bus publish failed", "topic", topic, "error", pubErr)
			}
		}
	}
	if c.telemetry != nil {
		c.telemetry.WriteSlotCompletion(zoneID, slotID, date, at)
	}
}

// publishFeedback relays an accepted entry to the building-management bus
// so AHU control can react to comfort reports for its zones.
func (c *Controller) publishFeedback(entry *feedback.Entry) {
	if c.bus == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("feedback entry marshal failed", "error", err)
		return
	}
	topic := topics.Feedback(entry.StoreID, entry.ZoneID)
	if err := c.bus.Publish(topic, data, 1, false); err != nil {
		c.logger.Warn("feedback bus publish failed", "topic", topic, "error", err)
	}
}

// ZoneState returns the cached state for one zone.
func (c *Controller) ZoneState(storeID, zoneID string) (ZoneState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.states[zoneKey{storeID, zoneID}]
	if !ok {
		return ZoneState{}, false
	}
	return *state, true
}

// States returns a snapshot of cached state for all tracked zones of a store.
func (c *Controller) States(storeID string) map[string]ZoneState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]ZoneState)
	for key, state := range c.states {
		if key.storeID == storeID {
			out[key.zoneID] = *state
		}
	}
	return out
}

// CompletedToday returns the slot ids the zone has completed today in the
// reference timezone.
func (c *Controller) CompletedToday(ctx context.Context, zoneID string) map[string]struct{} {
	date := c.sched.DateString(c.now())
	done, err := c.completions.CompletedOn(ctx, zoneID, date)
	if err != nil {
		return map[string]struct{}{}
	}
	return done
}

// Progress summarises today's slot completion for a zone.
func (c *Controller) Progress(ctx context.Context, zoneID string) Progress {
	return Progress{
		Done:  len(c.CompletedToday(ctx, zoneID)),
		Total: len(c.sched.Slots()),
	}
}

// PendingSlot reports whether a slot is currently open for the zone and
// not yet completed. The page layer queries this before requesting a
// local notification.
func (c *Controller) PendingSlot(ctx context.Context, zoneID string) (schedule.TimeSlot, bool) {
	now := c.now()
	current, ok := c.sched.CurrentSlot(now)
	if !ok {
		return schedule.TimeSlot{}, false
	}
	done := c.CompletedToday(ctx, zoneID)
	if _, completed := done[current.ID]; completed {
		return schedule.TimeSlot{}, false
	}
	return current, true
}

// ActiveSlot returns the currently open slot, if any.
func (c *Controller) ActiveSlot() (schedule.TimeSlot, bool) {
	return c.sched.CurrentSlot(c.now())
}

// NextSlotDisplay returns the next slot's opening time formatted for
// display, or false when no further slot opens today.
func (c *Controller) NextSlotDisplay() (string, bool) {
	return c.sched.NextSlotTime(c.now())
}

// ZonePhase derives the zone's slot state machine position from time and
// the completion log.
func (c *Controller) ZonePhase(ctx context.Context, zoneID string) Phase {
	done := c.CompletedToday(ctx, zoneID)
	if len(done) >= len(c.sched.Slots()) {
		return PhaseDayComplete
	}

	current, ok := c.sched.CurrentSlot(c.now())
	if !ok {
		return PhaseNoActiveSlot
	}
	if _, completed := done[current.ID]; completed {
		return PhaseCompleted
	}
	return PhaseAwaitingSubmission
}

// RunReminders broadcasts a reminder for every tracked zone with a
// pending, incomplete slot, on the given interval, until the context is
// cancelled. The ticker is released on return.
func (c *Controller) RunReminders(ctx context.Context, interval time.Duration) {
	if c.notifier == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.remindPendingZones(ctx)
		}
	}
}

// remindPendingZones emits one reminder per zone with an open, incomplete slot.
func (c *Controller) remindPendingZones(ctx context.Context) {
	c.mu.RLock()
	keys := make([]zoneKey, 0, len(c.states))
	for key := range c.states {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	for _, key := range keys {
		slot, pending := c.PendingSlot(ctx, key.zoneID)
		if !pending {
			continue
		}
		c.notifier.Broadcast(ChannelSlotReminder, map[string]any{
			"store_id":   key.storeID,
			"zone_id":    key.zoneID,
			"slot_id":    slot.ID,
			"slot_label": slot.Label,
		})
	}
}

// noopLogger discards all log output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
