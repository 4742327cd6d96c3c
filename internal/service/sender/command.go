package sender

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/siren-node/internal/config"
	"github.com/oshokin/siren-node/internal/domain/siren"
	"github.com/oshokin/siren-node/internal/logger"
	"github.com/oshokin/siren-node/internal/protocol"
	"github.com/oshokin/siren-node/internal/transport/udp"
)

// Options configures a single command transmission.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Target is the recipient node address. Empty broadcasts to ALL.
	Target string
	// EventName is the wire event to send (FIRE, FLOOD, EARTHQUAKE, MUTE).
	EventName string
	// DurationLabel is the requested run length. Empty picks the first option.
	DurationLabel string
}

// errUnknownEvent is returned when the event name is not in the vocabulary.
var errUnknownEvent = errors.New("unknown event")

// Run encodes the command and sends it once. Fire-and-forget: the protocol
// has no acknowledgments, so a clean exit only means the datagram left.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "siren-send")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Reject unknown events here; a node would drop them silently.
	event, ok := protocol.EventFromWire(opts.EventName)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownEvent, opts.EventName)
	}

	target := opts.Target
	if target == "" {
		target = protocol.AddressBroadcast
	}

	label := opts.DurationLabel
	if label == "" {
		label = siren.SelectionAt(0).Label
	}

	channel, err := udp.Open(ctx, "", cfg.RadioPeerAddr)
	if err != nil {
		return fmt.Errorf("open radio channel: %w", err)
	}

	defer func() {
		_ = channel.Close()
	}()

	// Encoding normalizes the event, so the legacy EARTQUAKE spelling goes
	// out canonical even when typed.
	line := protocol.Encode(protocol.Message{
		From:          cfg.CoordinatorAddress,
		To:            target,
		Event:         event.Wire(),
		DurationLabel: label,
	})

	if err := channel.Send(line); err != nil {
		return fmt.Errorf("send command: %w", err)
	}

	logger.InfoKV(ctx, "Command sent",
		"to", target,
		"event", event.Wire(),
		"duration", label,
		"peer", cfg.RadioPeerAddr,
	)

	return nil
}
