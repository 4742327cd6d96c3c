package protocol

import "github.com/oshokin/siren-node/internal/domain/siren"

// Event is the closed set of commands a wire message can carry.
type Event int

const (
	// EventFire triggers a fire alarm run.
	EventFire Event = iota
	// EventFlood triggers a flood alarm run.
	EventFlood
	// EventEarthquake triggers an earthquake alarm run.
	EventEarthquake
	// EventMute silences the siren.
	EventMute
)

// wireEarthquakeLegacy is the historical misspelling still sent by older
// coordinator firmware. Accepted as a synonym, never emitted.
const wireEarthquakeLegacy = "EARTQUAKE"

// Wire returns the canonical wire name of the event.
func (e Event) Wire() string {
	switch e {
	case EventFire:
		return "FIRE"
	case EventFlood:
		return "FLOOD"
	case EventEarthquake:
		return "EARTHQUAKE"
	case EventMute:
		return "MUTE"
	default:
		return "UNKNOWN"
	}
}

// EventFromWire maps a wire event name to its variant. The legacy
// EARTQUAKE misspelling is an explicit synonym entry. Unknown names
// return false; the caller discards the whole command.
func EventFromWire(s string) (Event, bool) {
	switch s {
	case "FIRE":
		return EventFire, true
	case "FLOOD":
		return EventFlood, true
	case "EARTHQUAKE", wireEarthquakeLegacy:
		return EventEarthquake, true
	case "MUTE":
		return EventMute, true
	default:
		return 0, false
	}
}

// Hazard returns the hazard kind a trigger event maps to.
// The second result is false for EventMute, which carries no hazard.
func (e Event) Hazard() (siren.HazardKind, bool) {
	switch e {
	case EventFire:
		return siren.HazardFire, true
	case EventFlood:
		return siren.HazardFlood, true
	case EventEarthquake:
		return siren.HazardEarthquake, true
	case EventMute:
		return 0, false
	default:
		return 0, false
	}
}

// EventForHazard returns the trigger event announcing the given hazard.
func EventForHazard(kind siren.HazardKind) Event {
	switch kind {
	case siren.HazardFire:
		return EventFire
	case siren.HazardFlood:
		return EventFlood
	case siren.HazardEarthquake:
		return EventEarthquake
	default:
		return EventFire
	}
}
