package siren

// HazardKind identifies the type of emergency the siren announces.
// The set is closed; every kind has exactly one tone profile.
type HazardKind int

const (
	// HazardFire is a fire emergency.
	HazardFire HazardKind = iota
	// HazardFlood is a flood emergency.
	HazardFlood
	// HazardEarthquake is an earthquake emergency.
	HazardEarthquake
)

// Kinds lists every hazard kind in a stable order,
// for callers that iterate the closed set.
func Kinds() []HazardKind {
	return []HazardKind{HazardFire, HazardFlood, HazardEarthquake}
}

// String returns the human-readable hazard label shown on the display.
func (k HazardKind) String() string {
	switch k {
	case HazardFire:
		return "FIRE"
	case HazardFlood:
		return "FLOOD"
	case HazardEarthquake:
		return "EARTHQUAKE"
	default:
		return "UNKNOWN"
	}
}
