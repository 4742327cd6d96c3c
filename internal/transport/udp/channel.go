package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oshokin/siren-node/internal/logger"
)

const (
	// maxMessageSize bounds a single inbound datagram. Wire lines are four
	// short fields, so anything larger is garbage anyway.
	maxMessageSize = 1024

	// inboundBufferSize is how many undrained messages are held before
	// newer ones are dropped.
	inboundBufferSize = 16
)

var (
	// errNoPeer is returned when sending without a configured peer address.
	errNoPeer = errors.New("no peer address configured")
	// errChannelClosed is returned when sending on a closed channel.
	errChannelClosed = errors.New("channel is closed")
)

// Channel is a best-effort duplex message link over UDP datagrams.
// Send is fire-and-forget; Poll drains received messages without blocking.
type Channel struct {
	// conn is the socket used for both directions.
	conn *net.UDPConn
	// peer is where outbound messages go. Nil means receive-only.
	peer *net.UDPAddr
	// inbound buffers received wire lines until the controller drains them.
	inbound chan string
	// done signals the reader goroutine that Close was called.
	done chan struct{}
}

// Open binds the listen address and starts receiving. An empty listenAddr
// binds an ephemeral port (send-mostly use); an empty peerAddr makes the
// channel receive-only.
func Open(ctx context.Context, listenAddr, peerAddr string) (*Channel, error) {
	if listenAddr == "" {
		listenAddr = ":0"
	}

	local, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve listen address: %w", err)
	}

	var peer *net.UDPAddr
	if peerAddr != "" {
		peer, err = net.ResolveUDPAddr("udp", peerAddr)
		if err != nil {
			return nil, fmt.Errorf("resolve peer address: %w", err)
		}
	}

	conn, err := net.ListenUDP("udp", local)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", listenAddr, err)
	}

	c := &Channel{
		conn:    conn,
		peer:    peer,
		inbound: make(chan string, inboundBufferSize),
		done:    make(chan struct{}),
	}

	go c.readLoop(ctx)

	return c, nil
}

// Send transmits one wire line as a single datagram. No delivery guarantee,
// no acknowledgment.
func (c *Channel) Send(line string) error {
	if c.peer == nil {
		return errNoPeer
	}

	select {
	case <-c.done:
		return errChannelClosed
	default:
	}

	if _, err := c.conn.WriteToUDP([]byte(line), c.peer); err != nil {
		return fmt.Errorf("send to %s: %w", c.peer, err)
	}

	return nil
}

// Poll returns the next buffered inbound message, if any, without blocking.
func (c *Channel) Poll() (string, bool) {
	select {
	case line := <-c.inbound:
		return line, true
	default:
		return "", false
	}
}

// LocalAddr returns the bound listen address.
func (c *Channel) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Close stops the reader and releases the socket.
func (c *Channel) Close() error {
	select {
	case <-c.done:
		return nil
	default:
	}

	close(c.done)

	return c.conn.Close()
}

// readLoop receives datagrams until the channel is closed. Read errors and
// buffer overflow both drop and continue; the radio link owes no guarantees.
func (c *Channel) readLoop(ctx context.Context) {
	buf := make([]byte, maxMessageSize)

	for {
		n, src, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
				logger.Debugf(ctx, "Radio read error: %v", err)

				continue
			}
		}

		line := strings.TrimRight(string(buf[:n]), "\r\n")

		select {
		case c.inbound <- line:
		default:
			logger.DebugKV(ctx, "Inbound buffer full, dropping message", "source", src.String())
		}
	}
}
