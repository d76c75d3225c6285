package ipc

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client is a window manager IPC client. A daemon typically holds two:
// one for issuing commands and queries, one dedicated to the event
// subscription (a subscribed connection only delivers events).
type Client struct {
	path string
	conn *Connection
}

// NewClient creates a client for the given socket path. The connection is
// established lazily on first use, or explicitly via Connect.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Connect establishes the socket connection
func (c *Client) Connect() error {
	conn, err := Dial(c.path)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ensure connects on first use
func (c *Client) ensure() error {
	if c.conn != nil {
		return nil
	}
	return c.Connect()
}

// request is a helper to send a message and decode the JSON reply
func (c *Client) request(ctx context.Context, msgType uint32, payload []byte, out interface{}) error {
	if err := c.ensure(); err != nil {
		return err
	}
	data, err := c.conn.roundTrip(ctx, msgType, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal reply: %w", err)
	}
	return nil
}

// RunCommand executes a window manager command and returns an error if
// any part of it was rejected.
func (c *Client) RunCommand(ctx context.Context, command string) error {
	var results []CommandResult
	if err := c.request(ctx, msgRunCommand, []byte(command), &results); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Success {
			return fmt.Errorf("command %q failed: %s", command, r.Error)
		}
	}
	return nil
}

// GetTree retrieves the current window tree
func (c *Client) GetTree(ctx context.Context) (*Node, error) {
	var root Node
	if err := c.request(ctx, msgGetTree, nil, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// GetWorkspaces retrieves the current workspace list
func (c *Client) GetWorkspaces(ctx context.Context) ([]Workspace, error) {
	var workspaces []Workspace
	if err := c.request(ctx, msgGetWorkspaces, nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Subscribe registers this connection for the given event classes. After a
// successful subscription the connection delivers events; consume them
// with NextWindowEvent.
func (c *Client) Subscribe(ctx context.Context, events ...EventType) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	var reply struct {
		Success bool `json:"success"`
	}
	if err := c.request(ctx, msgSubscribe, payload, &reply); err != nil {
		return err
	}
	if !reply.Success {
		return fmt.Errorf("subscription rejected for events %v", events)
	}
	return nil
}

// NextWindowEvent blocks until the next window event arrives on a
// subscribed connection. Messages of other event classes are skipped.
func (c *Client) NextWindowEvent(ctx context.Context) (*WindowEvent, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("connection is not subscribed")
	}

	stop := c.conn.unblockOnCancel(ctx)
	defer stop()

	for {
		msgType, data, err := c.conn.readMessage()
		if err != nil {
			return nil, c.conn.ctxErr(ctx, err)
		}
		if msgType != eventWindow {
			continue
		}
		var ev WindowEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal window event: %w", err)
		}
		return &ev, nil
	}
}
