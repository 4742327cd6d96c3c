package protocol

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Delimiter separates the four wire fields. The format has no escaping,
	// so field values must never contain it; this is an accepted limitation
	// of the deployed coordinator network, not something to fix silently.
	Delimiter = "|"

	// AddressBroadcast is the wildcard recipient every node accepts.
	AddressBroadcast = "ALL"

	// fieldCount is the exact number of fields in a wire line.
	fieldCount = 4
)

// ErrMalformed is returned when a wire line does not split into exactly
// four fields.
var ErrMalformed = errors.New("malformed message")

// Message is one wire command, inbound or outbound. Fields are raw strings;
// nothing is validated beyond the field count until the controller checks
// addressing and vocabulary.
type Message struct {
	// From is the sender's protocol address.
	From string
	// To is the recipient's protocol address or the ALL wildcard.
	To string
	// Event is the wire event name (FIRE, FLOOD, EARTHQUAKE, MUTE).
	Event string
	// DurationLabel is the requested run length in label form (e.g. "30sec").
	DurationLabel string
}

// Encode joins the message fields into a wire line. It always succeeds;
// callers are responsible for keeping the delimiter out of field values.
func Encode(m Message) string {
	return strings.Join([]string{m.From, m.To, m.Event, m.DurationLabel}, Delimiter)
}

// Decode parses a wire line into a Message. It fails with ErrMalformed
// unless exactly four fields are present. The fields are returned
// unvalidated.
func Decode(raw string) (Message, error) {
	fields := strings.Split(raw, Delimiter)
	if len(fields) != fieldCount {
		return Message{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformed, len(fields), fieldCount)
	}

	return Message{
		From:          fields[0],
		To:            fields[1],
		Event:         fields[2],
		DurationLabel: fields[3],
	}, nil
}
