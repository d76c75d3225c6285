package ipc

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

// Wire format: 6-byte magic, uint32 payload length, uint32 message type
// (both little-endian), then the JSON payload. Replies are correlated by
// ordering on the socket; event messages set the high bit of the type.
const (
	magic     = "i3-ipc"
	headerLen = 14

	msgRunCommand    = 0
	msgGetWorkspaces = 1
	msgSubscribe     = 2
	msgGetTree       = 4

	eventFlag   = 0x80000000
	eventWindow = eventFlag | 3
)

// Connection manages one unix domain socket connection to the window manager
type Connection struct {
	path   string
	conn   net.Conn
	reader *bufio.Reader
}

// Dial establishes a connection to the window manager socket
func Dial(path string) (*Connection, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket %s: %w", path, err)
	}
	return &Connection{
		path:   path,
		conn:   conn,
		reader: bufio.NewReader(conn),
	}, nil
}

// Close closes the connection
func (c *Connection) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// writeMessage frames and sends one message
func (c *Connection) writeMessage(msgType uint32, payload []byte) error {
	buf := make([]byte, headerLen+len(payload))
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[10:14], msgType)
	copy(buf[headerLen:], payload)

	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// readMessage reads one framed message off the socket
func (c *Connection) readMessage() (uint32, []byte, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(c.reader, header[:]); err != nil {
		return 0, nil, fmt.Errorf("failed to read message header: %w", err)
	}
	if string(header[:6]) != magic {
		return 0, nil, fmt.Errorf("invalid magic %q in message header", header[:6])
	}

	length := binary.LittleEndian.Uint32(header[6:10])
	msgType := binary.LittleEndian.Uint32(header[10:14])

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.reader, payload); err != nil {
		return 0, nil, fmt.Errorf("failed to read message payload: %w", err)
	}
	return msgType, payload, nil
}

// roundTrip sends a request and waits for the matching reply, discarding
// any event messages that arrive in between.
func (c *Connection) roundTrip(ctx context.Context, msgType uint32, payload []byte) ([]byte, error) {
	stop := c.unblockOnCancel(ctx)
	defer stop()

	if err := c.writeMessage(msgType, payload); err != nil {
		return nil, c.ctxErr(ctx, err)
	}

	for {
		replyType, data, err := c.readMessage()
		if err != nil {
			return nil, c.ctxErr(ctx, err)
		}
		if replyType&eventFlag != 0 {
			continue
		}
		if replyType != msgType {
			return nil, fmt.Errorf("expected reply type %d, got %d", msgType, replyType)
		}
		return data, nil
	}
}

// unblockOnCancel arranges for blocked socket reads/writes to fail once
// ctx is cancelled. The returned stop function must be called when the
// operation completes.
func (c *Connection) unblockOnCancel(ctx context.Context) func() bool {
	if ctx.Done() == nil {
		return func() bool { return false }
	}
	return context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Now())
	})
}

// ctxErr maps socket errors caused by cancellation back to the context error
func (c *Connection) ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
