// Package metrics registers the node's Prometheus instrumentation and
// exposes helpers the controller calls on each event. Registration happens
// once regardless of how many binaries link the package.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "siren_"

	// DropReasonMalformed marks inbound lines with a wrong field count.
	DropReasonMalformed = "malformed"
	// DropReasonAddress marks messages from an unauthorized sender or for
	// another node.
	DropReasonAddress = "address_mismatch"
	// DropReasonUnknownEvent marks messages with an unrecognized event name.
	DropReasonUnknownEvent = "unknown_event"
)

var (
	registerOnce sync.Once

	commandsReceived prometheus.Counter
	commandsApplied  *prometheus.CounterVec
	commandsDropped  *prometheus.CounterVec
	outboundEvents   *prometheus.CounterVec
	localTriggers    *prometheus.CounterVec
	keepAlivePulses  prometheus.Counter
)

// Init registers the node metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		commandsReceived = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_received_total",
				Help: "Total inbound radio messages, valid or not",
			},
		)
		commandsApplied = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_applied_total",
				Help: "Total validated remote commands applied, by event",
			},
			[]string{"event"},
		)
		commandsDropped = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_dropped_total",
				Help: "Total inbound messages dropped, by reason",
			},
			[]string{"reason"},
		)
		outboundEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "outbound_events_total",
				Help: "Total events sent to the coordinator, by event",
			},
			[]string{"event"},
		)
		localTriggers = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "local_triggers_total",
				Help: "Total locally triggered runs, by hazard",
			},
			[]string{"hazard"},
		)
		keepAlivePulses = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "keep_alive_pulses_total",
				Help: "Total amplifier wake-up pulses emitted while idle",
			},
		)

		prometheus.MustRegister(
			commandsReceived,
			commandsApplied,
			commandsDropped,
			outboundEvents,
			localTriggers,
			keepAlivePulses,
		)
	})
}

// CommandReceived counts one inbound radio message.
func CommandReceived() {
	if commandsReceived != nil {
		commandsReceived.Inc()
	}
}

// CommandApplied counts one validated remote command.
func CommandApplied(event string) {
	if commandsApplied != nil {
		commandsApplied.WithLabelValues(event).Inc()
	}
}

// CommandDropped counts one dropped inbound message.
func CommandDropped(reason string) {
	if commandsDropped != nil {
		commandsDropped.WithLabelValues(reason).Inc()
	}
}

// OutboundEvent counts one event sent to the coordinator.
func OutboundEvent(event string) {
	if outboundEvents != nil {
		outboundEvents.WithLabelValues(event).Inc()
	}
}

// LocalTrigger counts one locally triggered run.
func LocalTrigger(hazard string) {
	if localTriggers != nil {
		localTriggers.WithLabelValues(hazard).Inc()
	}
}

// KeepAlivePulse counts one amplifier wake-up pulse.
func KeepAlivePulse() {
	if keepAlivePulses != nil {
		keepAlivePulses.Inc()
	}
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
