// Package status derives the two display lines shown on the node's
// character display from the engine state and the operator's current
// duration selection.
package status
