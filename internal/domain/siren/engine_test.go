package siren

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// simClock is a manually advanced clock for driving the engine in tests.
type simClock struct {
	// now is the current simulated time.
	now time.Time
}

func newSimClock() *simClock {
	return &simClock{now: time.Unix(1000, 0)}
}

// Now returns the current simulated time.
func (c *simClock) Now() time.Time {
	return c.now
}

// Advance moves the simulated time forward.
func (c *simClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// toneRecorder captures the tone output side effects of the engine.
type toneRecorder struct {
	// hz is the last frequency set.
	hz int
	// on reports whether the output is currently sounding.
	on bool
	// setCalls counts SetTone invocations.
	setCalls int
	// silences counts Silence invocations.
	silences int
}

// SetTone records the driven frequency.
func (r *toneRecorder) SetTone(hz int) {
	r.hz = hz
	r.on = true
	r.setCalls++
}

// Silence records that the output was stopped.
func (r *toneRecorder) Silence() {
	r.on = false
	r.silences++
}

// runUntil advances simulated time in 10ms ticks, evaluating each tick,
// until the clock reaches the given offset from start.
func runUntil(e *Engine, clock *simClock, start time.Time, offset time.Duration) {
	for clock.Now().Sub(start) < offset {
		clock.Advance(10 * time.Millisecond)
		e.Evaluate()
	}
}

// TestEngineRunEndsAtStopTime verifies that every hazard and duration ends in
// Idle with a silenced output once simulated time passes the stop time, and
// that nothing changes afterwards.
func TestEngineRunEndsAtStopTime(t *testing.T) {
	t.Parallel()

	durations := []time.Duration{15 * time.Second, 30 * time.Second, time.Minute}

	for _, kind := range Kinds() {
		for _, d := range durations {
			clock := newSimClock()
			rec := new(toneRecorder)
			engine := NewEngine(rec, clock.Now)

			start := clock.Now()
			engine.Start(kind, d)
			runUntil(engine, clock, start, d+10*time.Millisecond)

			snap := engine.Snapshot()
			require.False(t, snap.Active)
			require.Equal(t, PhaseIdle, snap.Phase)
			require.False(t, rec.on)

			// No further output activity after the run ends.
			setCalls := rec.setCalls

			runUntil(engine, clock, start, d+time.Second)
			require.Equal(t, setCalls, rec.setCalls)
			require.False(t, rec.on)
		}
	}
}

// TestEngineMuteFromAnyPhase verifies that Mute silences immediately from
// every active phase and is a no-op while idle.
func TestEngineMuteFromAnyPhase(t *testing.T) {
	t.Parallel()

	// Offsets chosen to land the fire profile in each of its phases:
	// mid sweep-up, holding high (~3340ms + hold), and mid sweep-down.
	offsets := []time.Duration{
		50 * time.Millisecond,
		3500 * time.Millisecond,
		4500 * time.Millisecond,
	}

	for _, offset := range offsets {
		clock := newSimClock()
		rec := new(toneRecorder)
		engine := NewEngine(rec, clock.Now)

		start := clock.Now()
		engine.Start(HazardFire, 15*time.Second)
		runUntil(engine, clock, start, offset)

		require.True(t, engine.Active())

		engine.Mute()

		snap := engine.Snapshot()
		require.False(t, snap.Active)
		require.Equal(t, PhaseIdle, snap.Phase)
		require.False(t, rec.on)
	}

	// Muting while idle does nothing.
	rec := new(toneRecorder)
	engine := NewEngine(rec, newSimClock().Now)

	engine.Mute()
	require.Zero(t, rec.silences)
}

// TestEngineFrequencyStaysInProfileBounds verifies the bounds invariant
// for a full multi-cycle run of every hazard kind.
func TestEngineFrequencyStaysInProfileBounds(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		clock := newSimClock()
		rec := new(toneRecorder)
		engine := NewEngine(rec, clock.Now)
		profile := ProfileFor(kind)

		start := clock.Now()
		engine.Start(kind, 15*time.Second)

		for clock.Now().Sub(start) < 15*time.Second {
			clock.Advance(10 * time.Millisecond)
			engine.Evaluate()

			if snap := engine.Snapshot(); snap.Active {
				require.GreaterOrEqual(t, snap.CurrentHz, profile.LowHz)
				require.LessOrEqual(t, snap.CurrentHz, profile.HighHz)
			}
		}
	}
}

// TestEngineCyclesUntilStop verifies that the sweep/hold cycle repeats
// indefinitely: the run length bounds the run, not a cycle count.
func TestEngineCyclesUntilStop(t *testing.T) {
	t.Parallel()

	clock := newSimClock()
	rec := new(toneRecorder)
	engine := NewEngine(rec, clock.Now)

	// The earthquake profile cycles in roughly 3.5s, so a 15s run
	// must come back to SweepingUp several times.
	start := clock.Now()
	engine.Start(HazardEarthquake, 15*time.Second)

	var (
		lastPhase = PhaseSweepingUp
		reentries int
	)

	for clock.Now().Sub(start) < 15*time.Second {
		clock.Advance(10 * time.Millisecond)
		engine.Evaluate()

		phase := engine.Snapshot().Phase
		if phase == PhaseSweepingUp && lastPhase == PhaseHoldingLow {
			reentries++
		}

		lastPhase = phase
	}

	require.GreaterOrEqual(t, reentries, 2)
	require.False(t, engine.Active())
}

// TestEngineSweepScenario walks the fire profile through the documented
// timeline: low bound at start, high bound and hold by ~3.4s, sweeping down
// shortly after the hold, idle at 15s.
func TestEngineSweepScenario(t *testing.T) {
	t.Parallel()

	clock := newSimClock()
	rec := new(toneRecorder)
	engine := NewEngine(rec, clock.Now)

	start := clock.Now()
	engine.Start(HazardFire, 15*time.Second)

	require.Equal(t, 500, engine.Snapshot().CurrentHz)
	require.Equal(t, 500, rec.hz)

	// The 10ms quantum ramps 1000Hz in ~3.34s (3Hz per step).
	runUntil(engine, clock, start, 3400*time.Millisecond)

	snap := engine.Snapshot()
	require.Equal(t, PhaseHoldingHigh, snap.Phase)
	require.Equal(t, 1500, snap.CurrentHz)

	// The 500ms hold ends and the downward sweep begins.
	runUntil(engine, clock, start, 3900*time.Millisecond)
	require.Equal(t, PhaseSweepingDown, engine.Snapshot().Phase)

	// The run ends on schedule regardless of sweep phase.
	runUntil(engine, clock, start, 15*time.Second)

	snap = engine.Snapshot()
	require.False(t, snap.Active)
	require.Equal(t, PhaseIdle, snap.Phase)
	require.False(t, rec.on)
}

// TestEngineStartReplacesActiveRun verifies last-command-wins semantics:
// starting during a run resets to a fresh run with the new hazard.
func TestEngineStartReplacesActiveRun(t *testing.T) {
	t.Parallel()

	clock := newSimClock()
	rec := new(toneRecorder)
	engine := NewEngine(rec, clock.Now)

	start := clock.Now()
	engine.Start(HazardFire, 15*time.Second)
	runUntil(engine, clock, start, time.Second)

	engine.Start(HazardFlood, 30*time.Second)

	snap := engine.Snapshot()
	require.True(t, snap.Active)
	require.Equal(t, HazardFlood, snap.Hazard)
	require.Equal(t, PhaseSweepingUp, snap.Phase)
	require.Equal(t, ProfileFor(HazardFlood).LowHz, snap.CurrentHz)
	require.Equal(t, clock.Now().Add(30*time.Second), snap.StopAt)
}
