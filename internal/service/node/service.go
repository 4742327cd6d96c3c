package node

import (
	"context"
	"time"

	"github.com/oshokin/siren-node/internal/config"
	"github.com/oshokin/siren-node/internal/domain/siren"
	"github.com/oshokin/siren-node/internal/logger"
	"github.com/oshokin/siren-node/internal/metrics"
	"github.com/oshokin/siren-node/internal/protocol"
	"github.com/oshokin/siren-node/internal/status"
)

// InputProvider exposes the control panel as stable discrete values.
// Implementations poll hardware; the controller only reads levels.
type InputProvider interface {
	// MuteAsserted reports whether the mute control is held.
	MuteAsserted() bool
	// TriggerAsserted reports whether the trigger for the given hazard is held.
	TriggerAsserted(kind siren.HazardKind) bool
	// DurationIndex returns the 0-indexed duration selector position.
	// The second result is false when the position is unreadable.
	DurationIndex() (int, bool)
}

// StatusSink accepts a full replace of the two display lines.
type StatusSink interface {
	Display(line1, line2 string)
}

// RadioChannel is the duplex message link to the coordinator: whole
// messages, loss possible, no delivery guarantee.
type RadioChannel interface {
	Send(line string) error
	Poll() (string, bool)
}

// controller owns every collaborator exclusively and mutates them only
// from its single cycle, so no locking is needed anywhere in the node.
type controller struct {
	// cfg holds the node and coordinator addresses plus keep-alive tuning.
	cfg *config.Config
	// engine is the siren waveform state machine.
	engine *siren.Engine
	// inputs is the control panel.
	inputs InputProvider
	// radio is the coordinator link. Nil means siren-only degraded mode.
	radio RadioChannel
	// tone is the buzzer, shared with the engine for the keep-alive pulse.
	tone siren.ToneOutput
	// statusSink is the character display.
	statusSink StatusSink
	// reporter derives the display lines.
	reporter *status.Reporter
	// now supplies the current time, injected for simulated-clock tests.
	now func() time.Time
	// sleep blocks for the keep-alive pulse, injected for tests.
	sleep func(time.Duration)

	// lastKeepAlive is when the last amplifier wake-up pulse was emitted.
	lastKeepAlive time.Time
	// runSelection is the duration selection of the active run, kept so the
	// display shows what the run was started with, not the selector's
	// current position.
	runSelection siren.Selection
	// lastLine1 and lastLine2 are the lines last pushed to the display.
	lastLine1, lastLine2 string
	// displayed reports whether anything was pushed to the display yet.
	displayed bool
}

// newController wires the collaborators together. Nil now and sleep fall
// back to the real clock.
func newController(
	cfg *config.Config,
	engine *siren.Engine,
	inputs InputProvider,
	radio RadioChannel,
	tone siren.ToneOutput,
	statusSink StatusSink,
	reporter *status.Reporter,
	now func() time.Time,
	sleep func(time.Duration),
) *controller {
	if now == nil {
		now = time.Now
	}

	if sleep == nil {
		sleep = time.Sleep
	}

	return &controller{
		cfg:           cfg,
		engine:        engine,
		inputs:        inputs,
		radio:         radio,
		tone:          tone,
		statusSink:    statusSink,
		reporter:      reporter,
		now:           now,
		sleep:         sleep,
		lastKeepAlive: now(),
	}
}

// Step runs one evaluation cycle to completion: radio, local controls,
// engine, display, keep-alive. It never blocks except for the bounded
// keep-alive pulse, which only fires while idle.
func (c *controller) Step(ctx context.Context) {
	c.pollRadio(ctx)
	muting := c.pollInputs(ctx)
	c.engine.Evaluate()
	c.refreshStatus()
	c.keepAlive(ctx, muting)
}

// pollRadio drains one inbound message and applies it if it passes
// decoding, addressing and vocabulary checks. Every failure drops the
// message and continues; address mismatches are never acknowledged so an
// unauthorized sender learns nothing about this node.
func (c *controller) pollRadio(ctx context.Context) {
	if c.radio == nil {
		return
	}

	line, ok := c.radio.Poll()
	if !ok {
		return
	}

	metrics.CommandReceived()

	msg, err := protocol.Decode(line)
	if err != nil {
		logger.Debugf(ctx, "Dropping inbound message: %v", err)
		metrics.CommandDropped(metrics.DropReasonMalformed)

		return
	}

	if msg.From != c.cfg.CoordinatorAddress {
		metrics.CommandDropped(metrics.DropReasonAddress)

		return
	}

	if msg.To != c.cfg.NodeAddress && msg.To != protocol.AddressBroadcast {
		metrics.CommandDropped(metrics.DropReasonAddress)

		return
	}

	event, ok := protocol.EventFromWire(msg.Event)
	if !ok {
		metrics.CommandDropped(metrics.DropReasonUnknownEvent)

		return
	}

	if event == protocol.EventMute {
		c.engine.Mute()
		c.reporter.ShowTransient("Remote MUTE")
		metrics.CommandApplied(event.Wire())
		logger.Info(ctx, "Siren muted by coordinator")

		return
	}

	hazard, _ := event.Hazard()
	sel := siren.SelectionAt(siren.IndexOfLabel(msg.DurationLabel))

	c.runSelection = sel
	c.engine.Start(hazard, sel.Duration)
	c.reporter.ShowTransient("Remote Cmd: " + msg.Event)
	metrics.CommandApplied(event.Wire())
	logger.InfoKV(ctx, "Remote command applied", "event", event.Wire(), "duration", sel.Label)
}

// pollInputs reads the control panel. It returns true while the mute
// control is held so the keep-alive stays quiet under an operator's hand.
func (c *controller) pollInputs(ctx context.Context) bool {
	sel := c.currentSelection()

	if c.inputs.MuteAsserted() {
		c.engine.Mute()
		c.reporter.ShowTransient("MUTED")
		c.sendEvent(ctx, protocol.EventMute, sel.Label)

		return true
	}

	if c.engine.Active() {
		return false
	}

	for _, kind := range siren.Kinds() {
		if !c.inputs.TriggerAsserted(kind) {
			continue
		}

		c.sendEvent(ctx, protocol.EventForHazard(kind), sel.Label)

		c.runSelection = sel
		c.engine.Start(kind, sel.Duration)
		metrics.LocalTrigger(kind.String())
		logger.InfoKV(ctx, "Local trigger", "hazard", kind.String(), "duration", sel.Label)

		break
	}

	return false
}

// sendEvent encodes and transmits one outbound event. Fire-and-forget:
// a failed send is logged and the node moves on.
func (c *controller) sendEvent(ctx context.Context, event protocol.Event, durationLabel string) {
	if c.radio == nil {
		return
	}

	line := protocol.Encode(protocol.Message{
		From:          c.cfg.NodeAddress,
		To:            c.cfg.CoordinatorAddress,
		Event:         event.Wire(),
		DurationLabel: durationLabel,
	})

	if err := c.radio.Send(line); err != nil {
		logger.WarnKV(ctx, "Failed to send event", "event", event.Wire(), "error", err)

		return
	}

	metrics.OutboundEvent(event.Wire())
}

// currentSelection reads the duration selector, falling back to the first
// position when the selector is unreadable.
func (c *controller) currentSelection() siren.Selection {
	idx, ok := c.inputs.DurationIndex()
	if !ok {
		idx = 0
	}

	return siren.SelectionAt(idx)
}

// refreshStatus pushes the display lines when they change. The countdown
// line changes every second during a run, which keeps the refresh at the
// required once-per-second cadence without rewriting identical lines.
func (c *controller) refreshStatus() {
	snap := c.engine.Snapshot()

	sel := c.currentSelection()
	if snap.Active {
		sel = c.runSelection
	}

	line1, line2 := c.reporter.Lines(snap, sel)
	if c.displayed && line1 == c.lastLine1 && line2 == c.lastLine2 {
		return
	}

	c.statusSink.Display(line1, line2)
	c.lastLine1 = line1
	c.lastLine2 = line2
	c.displayed = true
}

// keepAlive emits the amplifier wake-up pulse once the configured interval
// elapses with the siren idle. The pulse blocks the cycle for its fixed
// short duration, acceptable because nothing time-critical runs while idle.
func (c *controller) keepAlive(ctx context.Context, muting bool) {
	if c.engine.Active() || muting {
		return
	}

	now := c.now()
	if now.Sub(c.lastKeepAlive) < c.cfg.KeepAliveInterval {
		return
	}

	c.tone.SetTone(c.cfg.KeepAlivePulseHz)
	c.sleep(c.cfg.KeepAlivePulseDuration)
	c.tone.Silence()

	c.lastKeepAlive = now

	metrics.KeepAlivePulse()
	logger.Debug(ctx, "Keep-alive pulse emitted")
}
