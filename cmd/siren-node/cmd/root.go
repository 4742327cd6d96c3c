package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/siren-node/internal/config"
	"github.com/oshokin/siren-node/internal/service/node"
	"github.com/oshokin/siren-node/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// cycleInterval overrides the controller cycle period.
	cycleInterval time.Duration

	// rootCmd represents the base command for running the siren node.
	rootCmd = &cobra.Command{
		Use:   "siren-node",
		Short: "Run the field siren node.",
		Long: `Starts the siren node daemon: it listens for coordinator commands on the
radio link, polls the local control panel, and drives the siren through its
frequency sweeps.

Addresses, the radio endpoints and the amplifier keep-alive tuning come from
the settings YAML file. If the radio link fails to initialize the node keeps
running in siren-only mode; local alarm capability survives regardless of
peer-link health.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &node.Options{
				ConfigPath:    configPath,
				CycleInterval: cycleInterval,
			}

			return node.Run(ctx, options)
		},
	}
)

// Execute runs the siren-node CLI and exits with non-zero status on error.
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
	rootCmd.Flags().
		DurationVar(&cycleInterval, "cycle-interval", node.DefaultCycleInterval, "controller cycle period")
}
