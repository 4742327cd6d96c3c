// Package sender implements the siren-send command: it encodes one
// coordinator command and transmits it as a single datagram. Run it from
// the coordinator's seat with a settings file whose radio_peer_addr points
// at the target node; it doubles as a field test tool for the protocol.
package sender
