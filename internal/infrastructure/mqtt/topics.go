package mqtt

import "fmt"

// Topic prefixes for the comfort feedback bus.
//
// All feedback traffic uses the flat scheme: comfort/{category}/{store}/{zone}.
// AHU-facing command topics address the air handler directly by unit id so
// the building-management system can subscribe per unit.
const (
	// TopicPrefix is the base for all comfort topics.
	TopicPrefix = "comfort"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "comfort/system"

	// TopicPrefixAHU is the base for air-handling-unit topics.
	TopicPrefixAHU = "comfort/ahu"
)

// Topics provides builders for comfort MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	t := topics.Feedback("store-central-rama9", "zone-a")
//	// Returns: "comfort/feedback/store-central-rama9/zone-a"
type Topics struct{}

// Feedback returns the topic for accepted feedback submissions in a zone.
//
// Example: comfort/feedback/store-central-rama9/zone-a
func (Topics) Feedback(storeID, zoneID string) string {
	return fmt.Sprintf("%s/feedback/%s/%s", TopicPrefix, storeID, zoneID)
}

// SlotCompleted returns the topic for slot completion events in a zone.
//
// Example: comfort/slot/store-central-rama9/zone-a
func (Topics) SlotCompleted(storeID, zoneID string) string {
	return fmt.Sprintf("%s/slot/%s/%s", TopicPrefix, storeID, zoneID)
}

// ZoneState returns the topic for zone state snapshots.
//
// Example: comfort/state/store-central-rama9/zone-a
func (Topics) ZoneState(storeID, zoneID string) string {
	return fmt.Sprintf("%s/state/%s/%s", TopicPrefix, storeID, zoneID)
}

// AHUCommand returns the topic for setpoint nudges to an air handling unit.
//
// Example: comfort/ahu/ahu-03/command
func (Topics) AHUCommand(ahuID string) string {
	return fmt.Sprintf("%s/%s/command", TopicPrefixAHU, ahuID)
}

// AHUStatus returns the topic an air handling unit reports status on.
//
// Example: comfort/ahu/ahu-03/status
func (Topics) AHUStatus(ahuID string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixAHU, ahuID)
}

// SystemStatus returns the service status topic, used for both the
// retained online announcement and the Last Will offline message.
//
// Example: comfort/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllFeedback returns a pattern matching feedback from every zone.
//
// Pattern: comfort/feedback/+/+
func (Topics) AllFeedback() string {
	return fmt.Sprintf("%s/feedback/+/+", TopicPrefix)
}

// StoreFeedback returns a pattern matching feedback from one store's zones.
//
// Pattern: comfort/feedback/store-central-rama9/+
func (Topics) StoreFeedback(storeID string) string {
	return fmt.Sprintf("%s/feedback/%s/+", TopicPrefix, storeID)
}

// AllSlotCompletions returns a pattern matching every slot completion event.
//
// Pattern: comfort/slot/+/+
func (Topics) AllSlotCompletions() string {
	return fmt.Sprintf("%s/slot/+/+", TopicPrefix)
}

// AllAHUStatus returns a pattern matching every air handling unit's status.
//
// Pattern: comfort/ahu/+/status
func (Topics) AllAHUStatus() string {
	return fmt.Sprintf("%s/+/status", TopicPrefixAHU)
}

// AllTopics returns a pattern matching all comfort topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: comfort/#
func (Topics) AllTopics() string {
	return "comfort/#"
}
