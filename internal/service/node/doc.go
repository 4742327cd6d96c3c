// Package node implements the siren node controller: one cooperative cycle
// that polls the radio for coordinator commands, polls the local controls,
// advances the siren engine, refreshes the display and emits the amplifier
// keep-alive pulse while idle.
//
// Triggers are level-polled each cycle with no debounce: holding a button
// re-triggers. This mirrors the deployed control panel behaviour and is a
// known limitation, not an oversight.
package node
