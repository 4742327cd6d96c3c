package node

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/siren-node/internal/config"
	"github.com/oshokin/siren-node/internal/domain/siren"
	"github.com/oshokin/siren-node/internal/logger"
	"github.com/oshokin/siren-node/internal/metrics"
	"github.com/oshokin/siren-node/internal/status"
	"github.com/oshokin/siren-node/internal/transport/udp"
)

// Options controls the siren-node process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// CycleInterval overrides the controller cycle period.
	CycleInterval time.Duration
	// Inputs is the control panel implementation. Nil installs a provider
	// that never asserts anything, for radio-commanded deployments.
	Inputs InputProvider
	// Tone is the buzzer implementation. Nil installs a logging stand-in.
	Tone siren.ToneOutput
	// Status is the display implementation. Nil installs a logging stand-in.
	Status StatusSink
}

// DefaultCycleInterval keeps sweeps smooth: well under the engine's 10ms
// step quantum.
const DefaultCycleInterval = 2 * time.Millisecond

// metricsReadHeaderTimeout bounds slow-header clients on the metrics port.
const metricsReadHeaderTimeout = 5 * time.Second

// Run starts the node controller loop and blocks until the context is
// canceled. A failed radio initialization degrades to siren-only mode; the
// node's local alarm duty survives any peer-link failure.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "siren-node")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	metrics.Init()

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr)
	}

	// Fall back to stand-ins for the hardware collaborators that were not
	// provided; the controller is agnostic to what is behind the interfaces.
	inputs := opts.Inputs
	if inputs == nil {
		inputs = idleInputProvider{}
	}

	tone := opts.Tone
	if tone == nil {
		tone = &logToneOutput{ctx: ctx}
	}

	statusSink := opts.Status
	if statusSink == nil {
		statusSink = &logStatusSink{ctx: ctx}
	}

	// Bring up the radio link. Failure is not fatal: the node keeps its
	// local alarm capability and reports the degraded state once.
	var radio RadioChannel

	channel, err := udp.Open(ctx, cfg.RadioListenAddr, cfg.RadioPeerAddr)
	if err != nil {
		logger.ErrorKV(ctx, "Radio unavailable, continuing in siren-only mode", "error", err)
	} else {
		radio = channel

		defer func() {
			_ = channel.Close()
		}()
	}

	engine := siren.NewEngine(tone, time.Now)
	reporter := status.NewReporter(time.Now)
	ctl := newController(cfg, engine, inputs, radio, tone, statusSink, reporter, time.Now, time.Sleep)

	if radio == nil {
		reporter.ShowTransient("Radio offline")
	}

	logger.InfoKV(ctx, "Siren node started",
		"node", cfg.NodeAddress,
		"coordinator", cfg.CoordinatorAddress,
		"radio_channel", cfg.RadioChannel,
	)

	interval := opts.CycleInterval
	if interval <= 0 {
		interval = DefaultCycleInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Siren node shutting down")

			return nil
		case <-ticker.C:
			ctl.Step(ctx)
		}
	}
}

// serveMetrics exposes the Prometheus endpoint in the background. A bind
// failure is logged and ignored: observability never takes the node down.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WarnKV(ctx, "Metrics endpoint failed", "error", err)
		}
	}()
}

// idleInputProvider is the stand-in control panel for deployments driven
// purely by radio commands: nothing is ever asserted.
type idleInputProvider struct{}

// MuteAsserted always reports false.
func (idleInputProvider) MuteAsserted() bool {
	return false
}

// TriggerAsserted always reports false.
func (idleInputProvider) TriggerAsserted(siren.HazardKind) bool {
	return false
}

// DurationIndex always reports the first selector position.
func (idleInputProvider) DurationIndex() (int, bool) {
	return 0, true
}

// logToneOutput is the stand-in buzzer: it logs frequency changes instead
// of driving hardware. Repeated identical tones stay quiet to avoid
// flooding the log from a millisecond-scale cycle.
type logToneOutput struct {
	// ctx carries the scoped logger.
	ctx context.Context
	// lastHz is the last frequency logged.
	lastHz int
	// sounding reports whether the tone is currently on.
	sounding bool
}

// SetTone logs the driven frequency when it changes.
func (o *logToneOutput) SetTone(hz int) {
	if o.sounding && hz == o.lastHz {
		return
	}

	o.lastHz = hz
	o.sounding = true

	logger.DebugKV(o.ctx, "Tone", "hz", hz)
}

// Silence logs the end of the tone.
func (o *logToneOutput) Silence() {
	if !o.sounding {
		return
	}

	o.sounding = false

	logger.Debug(o.ctx, "Tone silenced")
}

// logStatusSink is the stand-in display: it logs the two status lines.
type logStatusSink struct {
	// ctx carries the scoped logger.
	ctx context.Context
}

// Display logs a full replace of the display contents.
func (s *logStatusSink) Display(line1, line2 string) {
	logger.InfoKV(s.ctx, "Status", "line1", line1, "line2", line2)
}
