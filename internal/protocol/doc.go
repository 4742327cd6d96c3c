// Package protocol implements the wire format spoken between a siren node
// and its coordinator: a single ASCII line of four fields joined by "|".
//
// The codec is purely syntactic. Decode only checks the field count;
// authorization (sender/recipient addresses) and vocabulary checks belong to
// the node controller, mirroring how a transport layer converts wire types
// before the domain validates them.
package protocol
