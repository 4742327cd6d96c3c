package siren

import (
	"math"
	"time"
)

// ToneOutput is the buzzer abstraction the engine drives. SetTone holds a
// square wave at the given frequency until the next call; Silence stops it.
type ToneOutput interface {
	SetTone(hz int)
	Silence()
}

// Phase is the engine's position in the sweep cycle.
type Phase int

const (
	// PhaseIdle means no alarm is sounding. The engine starts here and
	// returns here after every run.
	PhaseIdle Phase = iota
	// PhaseSweepingUp ramps the frequency from the profile's low bound to its high bound.
	PhaseSweepingUp
	// PhaseHoldingHigh rests the tone at the high bound.
	PhaseHoldingHigh
	// PhaseSweepingDown ramps the frequency back down to the low bound.
	PhaseSweepingDown
	// PhaseHoldingLow rests the tone at the low bound.
	PhaseHoldingLow
)

// String returns the phase name for logs and status output.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSweepingUp:
		return "SweepingUp"
	case PhaseHoldingHigh:
		return "HoldingHigh"
	case PhaseSweepingDown:
		return "SweepingDown"
	case PhaseHoldingLow:
		return "HoldingLow"
	default:
		return "Unknown"
	}
}

// stepQuantum is the fixed time slice between frequency steps. Sweeps advance
// in these quanta rather than continuously, which is what gives the siren its
// audible ramp granularity.
const stepQuantum = 10 * time.Millisecond

// Snapshot is a read-only copy of the engine state, handed to the status
// reporter and tests so they never touch the engine's own fields.
type Snapshot struct {
	// Active reports whether a run is in progress.
	Active bool
	// Hazard is the hazard kind of the current run. Meaningful only while Active.
	Hazard HazardKind
	// CurrentHz is the frequency currently driven to the tone output.
	CurrentHz int
	// Phase is the engine's position in the sweep cycle.
	Phase Phase
	// StopAt is when the current run ends. Meaningful only while Active.
	StopAt time.Time
}

// Engine is the siren waveform state machine. It owns its state exclusively;
// callers interact through Start, Mute, Evaluate and Snapshot. The engine
// never blocks and every call is O(1), so it is safe to drive from a
// millisecond-scale control cycle.
type Engine struct {
	// out receives the (tone, silence) side effects of every state change.
	out ToneOutput
	// now supplies the current time, injected so tests can run simulated clocks.
	now func() time.Time

	active     bool
	hazard     HazardKind
	profile    ToneProfile
	currentHz  int
	stepHz     int
	phase      Phase
	phaseStart time.Time
	lastStep   time.Time
	stopAt     time.Time
}

// NewEngine creates an idle engine driving the provided tone output.
// A nil now falls back to time.Now.
func NewEngine(out ToneOutput, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}

	return &Engine{
		out: out,
		now: now,
	}
}

// Start begins a run for the given hazard and duration. It is
// idempotent-replacing: starting while already active resets to a fresh run
// with the new hazard and duration, last command wins, nothing is queued.
func (e *Engine) Start(hazard HazardKind, duration time.Duration) {
	now := e.now()
	profile := ProfileFor(hazard)

	e.active = true
	e.hazard = hazard
	e.profile = profile
	e.currentHz = profile.LowHz
	e.stepHz = stepSize(profile)
	e.phase = PhaseSweepingUp
	e.phaseStart = now
	e.lastStep = now
	e.stopAt = now.Add(duration)

	e.out.SetTone(e.currentHz)
}

// Mute silences the siren immediately from any active phase.
// Muting an idle engine is a no-op.
func (e *Engine) Mute() {
	if !e.active {
		return
	}

	e.silence()
}

// Evaluate advances the state machine against the current time and pushes
// the resulting tone to the output. Call it once per control cycle.
func (e *Engine) Evaluate() {
	if !e.active {
		return
	}

	now := e.now()

	// The stop check outranks every other transition: a run never overshoots
	// its commanded duration, even mid-sweep or mid-hold.
	if !now.Before(e.stopAt) {
		e.silence()

		return
	}

	switch e.phase {
	case PhaseSweepingUp:
		if now.Sub(e.lastStep) >= stepQuantum {
			e.lastStep = now

			e.currentHz += e.stepHz
			if e.currentHz >= e.profile.HighHz {
				e.currentHz = e.profile.HighHz
				e.enterPhase(PhaseHoldingHigh, now)
			}
		}
	case PhaseHoldingHigh:
		if now.Sub(e.phaseStart) >= e.profile.HoldHigh {
			e.enterPhase(PhaseSweepingDown, now)
		}
	case PhaseSweepingDown:
		if now.Sub(e.lastStep) >= stepQuantum {
			e.lastStep = now

			e.currentHz -= e.stepHz
			if e.currentHz <= e.profile.LowHz {
				e.currentHz = e.profile.LowHz
				e.enterPhase(PhaseHoldingLow, now)
			}
		}
	case PhaseHoldingLow:
		if now.Sub(e.phaseStart) >= e.profile.HoldLow {
			e.enterPhase(PhaseSweepingUp, now)
		}
	case PhaseIdle:
		// Unreachable while active; kept for exhaustiveness.
	}

	e.out.SetTone(e.currentHz)
}

// Active reports whether a run is in progress.
func (e *Engine) Active() bool {
	return e.active
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Active:    e.active,
		Hazard:    e.hazard,
		CurrentHz: e.currentHz,
		Phase:     e.phase,
		StopAt:    e.stopAt,
	}
}

// enterPhase records a phase change. Sweep phases also restart the step
// timer so the first step lands one full quantum after the hold ends.
func (e *Engine) enterPhase(phase Phase, now time.Time) {
	e.phase = phase
	e.phaseStart = now
	e.lastStep = now
}

// silence stops the output and returns the engine to Idle.
func (e *Engine) silence() {
	e.active = false
	e.phase = PhaseIdle
	e.currentHz = 0

	e.out.Silence()
}

// stepSize computes the frequency advance per step quantum: the profile's
// range scaled to the quantum, with integer rounding.
func stepSize(p ToneProfile) int {
	hzRange := float64(p.HighHz - p.LowHz)

	return int(math.Round(hzRange * float64(stepQuantum) / float64(p.SweepDuration)))
}
