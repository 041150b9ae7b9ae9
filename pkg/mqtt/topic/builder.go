package topic

import (
	"fmt"
	"strconv"
)

// Topic segments for inventory events. Subscribers depend on these values.
const (
	// SuffixInventory groups every inventory event.
	// Structure: {root}/inventory/{event}/{vehicleID}
	SuffixInventory = "inventory"

	// Wildcard is the single-level wildcard "+".
	Wildcard = "+"

	// MultiWildcard is the multi-level wildcard "#". It must be the last level.
	MultiWildcard = "#"

	// NoVehicle stands in for the vehicle segment on list-wide events.
	NoVehicle = "all"
)

// TopicBuilder encapsulates the logic for constructing MQTT topic strings.
type TopicBuilder struct {
	// root is the base namespace for all topics (e.g., "garage/v1").
	root string
}

// NewTopicBuilder creates a new instance of TopicBuilder with the specified root namespace.
func NewTopicBuilder(root string) *TopicBuilder {
	return &TopicBuilder{root: root}
}

// Event returns the topic for an event about a single vehicle. A zero id
// addresses the whole list.
func (b *TopicBuilder) Event(event string, vehicleID int64) string {
	id := NoVehicle
	if vehicleID != 0 {
		id = strconv.FormatInt(vehicleID, 10)
	}
	return fmt.Sprintf("%s/%s/%s/%s", b.root, SuffixInventory, event, id)
}

// EventWildcard matches one event kind for every vehicle.
// Result: {root}/inventory/{event}/+
func (b *TopicBuilder) EventWildcard(event string) string {
	return fmt.Sprintf("%s/%s/%s/%s", b.root, SuffixInventory, event, Wildcard)
}

// All matches every inventory event.
// Result: {root}/inventory/#
func (b *TopicBuilder) All() string {
	return fmt.Sprintf("%s/%s/%s", b.root, SuffixInventory, MultiWildcard)
}
