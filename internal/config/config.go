package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the siren binaries.
type Config struct {
	// NodeAddress is this node's protocol address (the "to" field it answers to).
	NodeAddress string `yaml:"node_address"`
	// CoordinatorAddress is the only peer address authorized to command this node.
	CoordinatorAddress string `yaml:"coordinator_address"`
	// RadioListenAddr is the UDP address the radio channel receives on.
	RadioListenAddr string `yaml:"radio_listen_addr"`
	// RadioPeerAddr is the UDP address outbound messages are sent to.
	RadioPeerAddr string `yaml:"radio_peer_addr"`
	// RadioChannel is the radio band/channel number, carried for ops inventory.
	RadioChannel int `yaml:"radio_channel"`
	// KeepAliveInterval is how long the siren may stay silent before an
	// amplifier wake-up pulse is emitted. Field hardware manuals disagree on
	// whether 1h or 24h is correct, so it is configurable rather than fixed.
	KeepAliveInterval time.Duration `yaml:"keep_alive_interval"`
	// KeepAlivePulseHz is the frequency of the wake-up pulse.
	KeepAlivePulseHz int `yaml:"keep_alive_pulse_hz"`
	// KeepAlivePulseDuration is how long the wake-up pulse is held.
	KeepAlivePulseDuration time.Duration `yaml:"keep_alive_pulse_duration"`
	// MetricsAddr is the HTTP listen address for Prometheus metrics.
	// Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for node settings.
	DefaultConfigFilename = "siren-node-settings.yaml"

	// DefaultKeepAliveInterval is the default amplifier wake-up period.
	DefaultKeepAliveInterval = time.Hour

	// DefaultKeepAlivePulseHz is the default wake-up pulse frequency,
	// low enough to be near-inaudible through the horn.
	DefaultKeepAlivePulseHz = 50

	// DefaultKeepAlivePulseDuration is the default wake-up pulse length.
	DefaultKeepAlivePulseDuration = 40 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNodeAddressRequired is returned when the node address is missing.
	errNodeAddressRequired = errors.New("node address must be provided")
	// errCoordinatorRequired is returned when the coordinator address is missing.
	errCoordinatorRequired = errors.New("coordinator address must be provided")
	// errAddressDelimiter is returned when a protocol address contains the
	// wire delimiter, which the format cannot escape.
	errAddressDelimiter = errors.New(`protocol addresses must not contain "|"`)
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.NodeAddress == "" {
		return errNodeAddressRequired
	}

	if cfg.CoordinatorAddress == "" {
		return errCoordinatorRequired
	}

	// The wire format has no escaping, so the delimiter is banned outright.
	if strings.ContainsRune(cfg.NodeAddress, '|') || strings.ContainsRune(cfg.CoordinatorAddress, '|') {
		return errAddressDelimiter
	}

	if cfg.RadioListenAddr != "" {
		if _, err := net.ResolveUDPAddr("udp", cfg.RadioListenAddr); err != nil {
			return fmt.Errorf("invalid radio listen address: %w", err)
		}
	}

	if cfg.RadioPeerAddr != "" {
		if _, err := net.ResolveUDPAddr("udp", cfg.RadioPeerAddr); err != nil {
			return fmt.Errorf("invalid radio peer address: %w", err)
		}
	}

	if cfg.KeepAliveInterval <= 0 {
		cfg.KeepAliveInterval = DefaultKeepAliveInterval
	}

	if cfg.KeepAlivePulseHz <= 0 {
		cfg.KeepAlivePulseHz = DefaultKeepAlivePulseHz
	}

	if cfg.KeepAlivePulseDuration <= 0 {
		cfg.KeepAlivePulseDuration = DefaultKeepAlivePulseDuration
	}

	return nil
}
