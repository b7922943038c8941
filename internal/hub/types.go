package hub

// Device represents one hub entity at the moment of a states fetch.
//
// The entity ID is a namespaced string of the form "domain.name"
// (e.g. "light.kitchen"). State is the hub's opaque state string;
// attributes are passed through untouched.
type Device struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Snapshot is the device inventory returned by one states fetch.
//
// It keys devices by entity ID and preserves the order the hub returned
// them in, which downstream dispatch relies on for deterministic fan-out.
// Snapshots are immutable after construction and safe for concurrent reads.
type Snapshot struct {
	devices map[string]Device
	order   []string
}

// NewSnapshot builds a Snapshot from the hub's entity list.
//
// Entity IDs are unique keys: if the hub reports the same ID twice, the
// later entry wins and the ID keeps its first position in the order.
func NewSnapshot(devices []Device) *Snapshot {
	s := &Snapshot{
		devices: make(map[string]Device, len(devices)),
		order:   make([]string, 0, len(devices)),
	}
	for _, d := range devices {
		if _, exists := s.devices[d.EntityID]; !exists {
			s.order = append(s.order, d.EntityID)
		}
		s.devices[d.EntityID] = d
	}
	return s
}

// EmptySnapshot returns a snapshot with no devices.
// Used as the soft-failure result when a states fetch fails.
func EmptySnapshot() *Snapshot {
	return &Snapshot{devices: map[string]Device{}}
}

// Len returns the number of devices in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Get returns the device with the given entity ID.
func (s *Snapshot) Get(entityID string) (Device, bool) {
	d, ok := s.devices[entityID]
	return d, ok
}

// EntityIDs returns all entity IDs in hub return order.
// The returned slice must not be modified.
func (s *Snapshot) EntityIDs() []string {
	return s.order
}

// Devices returns all devices in hub return order.
func (s *Snapshot) Devices() []Device {
	out := make([]Device, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.devices[id])
	}
	return out
}

// MatchPrefix returns the entity IDs whose identifier starts with the
// given prefix, in hub return order.
func (s *Snapshot) MatchPrefix(prefix string) []string {
	var matched []string
	for _, id := range s.order {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			matched = append(matched, id)
		}
	}
	return matched
}
