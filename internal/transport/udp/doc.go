// Package udp backs the node's radio link with UDP datagrams: one datagram
// carries one wire line. The link is best-effort both ways, matching the
// radio's at-most-once delivery model; inbound datagrams are buffered and
// drained non-blocking by the controller, and overflow is dropped rather
// than queued.
package udp
