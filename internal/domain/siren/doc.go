// Package siren contains the core domain types for the alarm node: the
// closed set of hazard kinds, their tone profiles, the duration options the
// operator can select, and the Engine state machine that turns a hazard and
// a duration into an evolving square-wave frequency.
package siren
