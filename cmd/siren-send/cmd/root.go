package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/siren-node/internal/config"
	"github.com/oshokin/siren-node/internal/protocol"
	"github.com/oshokin/siren-node/internal/service/sender"
	"github.com/oshokin/siren-node/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// target is the recipient node address.
	target string

	// rootCmd represents the base command for sending one coordinator command.
	rootCmd = &cobra.Command{
		Use:   "siren-send <event> [duration-label]",
		Short: "Send one command to a siren node.",
		Long: `Encodes a coordinator command and transmits it to the radio peer from the
settings file. The event is one of FIRE, FLOOD, EARTHQUAKE or MUTE; the
optional duration label is one of the node's selector labels (15sec, 30sec,
1min, 1:30min, 2min, 3min). Delivery is best-effort with no acknowledgment.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &sender.Options{
				ConfigPath: configPath,
				Target:     target,
				EventName:  args[0],
			}

			if len(args) > 1 {
				options.DurationLabel = args[1]
			}

			return sender.Run(ctx, options)
		},
	}
)

// Execute runs the siren-send CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&target, "to", "t", protocol.AddressBroadcast, "recipient node address")
}
