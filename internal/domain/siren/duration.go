package siren

import "time"

// Selection is one resolved duration choice: the run length, the label shown
// on the display and carried on the wire, and the selector index it came from.
type Selection struct {
	// Duration is how long the siren runs.
	Duration time.Duration
	// Label is the display and wire form of the duration.
	Label string
	// Index is the physical selector position this selection maps to.
	Index int
}

// durationOption is one entry of the fixed selector table.
type durationOption struct {
	duration time.Duration
	label    string
}

// durationOptions maps physical selector positions to run lengths.
// Order matters: it mirrors the detents of the rotary selector.
var durationOptions = []durationOption{
	{15 * time.Second, "15sec"},
	{30 * time.Second, "30sec"},
	{time.Minute, "1min"},
	{90 * time.Second, "1:30min"},
	{2 * time.Minute, "2min"},
	{3 * time.Minute, "3min"},
}

// DurationCount returns the number of selector positions.
func DurationCount() int {
	return len(durationOptions)
}

// SelectionAt resolves a 0-indexed selector position to a Selection.
// Out-of-range positions fall back to index 0, matching the hardware
// behaviour when the selector is between detents or unreadable.
func SelectionAt(index int) Selection {
	if index < 0 || index >= len(durationOptions) {
		index = 0
	}

	opt := durationOptions[index]

	return Selection{
		Duration: opt.duration,
		Label:    opt.label,
		Index:    index,
	}
}

// IndexOfLabel matches a duration label case-sensitively against the fixed
// table. An unrecognized label resolves to index 0 rather than an error:
// a lenient-fallback policy so a command with a garbled duration still runs.
func IndexOfLabel(label string) int {
	for i, opt := range durationOptions {
		if opt.label == label {
			return i
		}
	}

	return 0
}
