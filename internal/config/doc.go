// Package config defines the settings shared by the siren binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the protocol addresses (node and coordinator), the
// UDP endpoints backing the radio link, and the amplifier keep-alive tuning.
package config
