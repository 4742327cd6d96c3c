// Package version exposes build metadata (semantic version, commit, build
// time) and a reusable cobra `version` subcommand for the siren binaries.
package version
