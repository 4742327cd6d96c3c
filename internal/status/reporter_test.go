package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/siren-node/internal/domain/siren"
)

// testClock is a manually advanced clock for reporter tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

// TestLinesIdle verifies the ready prompt shown while no alarm runs.
func TestLinesIdle(t *testing.T) {
	t.Parallel()

	clock := &testClock{now: time.Unix(1000, 0)}
	r := NewReporter(clock.Now)

	line1, line2 := r.Lines(siren.Snapshot{}, siren.SelectionAt(1))
	require.Equal(t, "Siren ready", line1)
	require.Equal(t, "Duration: 30sec", line2)
}

// TestLinesActiveCountdown verifies the hazard header and the MM:SS
// remaining time, truncated to seconds and clamped at zero.
func TestLinesActiveCountdown(t *testing.T) {
	t.Parallel()

	clock := &testClock{now: time.Unix(1000, 0)}
	r := NewReporter(clock.Now)

	snap := siren.Snapshot{
		Active: true,
		Hazard: siren.HazardFire,
		StopAt: clock.now.Add(95*time.Second + 700*time.Millisecond),
	}

	line1, line2 := r.Lines(snap, siren.SelectionAt(3))
	require.Equal(t, "FIRE 1:30min", line1)
	require.Equal(t, "01:35", line2)

	// One second later the countdown ticks down.
	clock.now = clock.now.Add(time.Second)

	_, line2 = r.Lines(snap, siren.SelectionAt(3))
	require.Equal(t, "01:34", line2)

	// Past the stop time the countdown clamps at zero.
	clock.now = snap.StopAt.Add(5 * time.Second)

	_, line2 = r.Lines(snap, siren.SelectionAt(3))
	require.Equal(t, "00:00", line2)
}

// TestTransientOverridesAndExpires verifies an event banner replaces the
// first line immediately and regular status resumes after the hold.
func TestTransientOverridesAndExpires(t *testing.T) {
	t.Parallel()

	clock := &testClock{now: time.Unix(1000, 0)}
	r := NewReporter(clock.Now)

	r.ShowTransient("Remote MUTE")

	line1, line2 := r.Lines(siren.Snapshot{}, siren.SelectionAt(0))
	require.Equal(t, "Remote MUTE", line1)
	require.Equal(t, "Duration: 15sec", line2)

	// The banner also overrides an active run's header, but not the countdown.
	snap := siren.Snapshot{
		Active: true,
		Hazard: siren.HazardFlood,
		StopAt: clock.now.Add(30 * time.Second),
	}

	line1, line2 = r.Lines(snap, siren.SelectionAt(1))
	require.Equal(t, "Remote MUTE", line1)
	require.Equal(t, "00:30", line2)

	// After the hold the regular line returns.
	clock.now = clock.now.Add(3 * time.Second)

	line1, _ = r.Lines(snap, siren.SelectionAt(1))
	require.Equal(t, "FLOOD 30sec", line1)
}
