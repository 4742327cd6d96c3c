package siren

import "time"

// ToneProfile describes the sweep shape for one hazard kind.
// Profiles are immutable for the process lifetime.
type ToneProfile struct {
	// LowHz is the lower frequency bound of the sweep.
	LowHz int
	// HighHz is the upper frequency bound of the sweep. Always above LowHz.
	HighHz int
	// SweepDuration is how long one full ramp between the bounds takes.
	SweepDuration time.Duration
	// HoldHigh is how long the tone rests at HighHz before sweeping down.
	HoldHigh time.Duration
	// HoldLow is how long the tone rests at LowHz before sweeping up again.
	HoldLow time.Duration
}

// profiles is the fixed hazard-to-sweep-shape catalog. The shapes are chosen
// so each hazard is distinguishable by ear: fire is a classic mid-band wail,
// flood a slower low wail with long rests, earthquake a fast urgent warble.
var profiles = map[HazardKind]ToneProfile{
	HazardFire: {
		LowHz:         500,
		HighHz:        1500,
		SweepDuration: 3 * time.Second,
		HoldHigh:      500 * time.Millisecond,
		HoldLow:       500 * time.Millisecond,
	},
	HazardFlood: {
		LowHz:         400,
		HighHz:        1100,
		SweepDuration: 4 * time.Second,
		HoldHigh:      1500 * time.Millisecond,
		HoldLow:       1500 * time.Millisecond,
	},
	HazardEarthquake: {
		LowHz:         300,
		HighHz:        900,
		SweepDuration: 1500 * time.Millisecond,
		HoldHigh:      250 * time.Millisecond,
		HoldLow:       250 * time.Millisecond,
	},
}

// ProfileFor returns the tone profile for the given hazard kind.
// The catalog covers the closed hazard set, so there is no failure path.
func ProfileFor(kind HazardKind) ToneProfile {
	return profiles[kind]
}
