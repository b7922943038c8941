package mqtt

// Topic prefixes for Hearth Bridge MQTT events.
//
// The bridge publishes under a single flat scheme: hearth/{category}/{name}.
const (
	// TopicPrefix is the base for all bridge topics.
	TopicPrefix = "hearth"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearth/system"

	// TopicPrefixEvent is the base for event topics.
	TopicPrefixEvent = "hearth/event"
)

// Topics provides builders for Hearth Bridge MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.CommandResult()
//	// Returns: "hearth/event/command"
type Topics struct{}

// SystemStatus returns the topic for bridge online/offline status.
// Messages on this topic are retained; the LWT also publishes here.
//
// Example: hearth/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// CommandResult returns the topic for completed command dispatch outcomes.
//
// Example: hearth/event/command
func (Topics) CommandResult() string {
	return TopicPrefixEvent + "/command"
}

// DeviceSnapshot returns the topic for device snapshot summaries,
// published after each hub states fetch. Retained so late subscribers
// see the most recent snapshot.
//
// Example: hearth/event/devices
func (Topics) DeviceSnapshot() string {
	return TopicPrefixEvent + "/devices"
}
