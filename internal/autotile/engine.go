package autotile

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/yourusername/autotile/internal/ipc"
)

const DefaultReconnectDelay = 5 * time.Second

// CommandClient is the subset of the IPC client the engine needs for
// queries and commands.
type CommandClient interface {
	GetTree(ctx context.Context) (*ipc.Node, error)
	GetWorkspaces(ctx context.Context) ([]ipc.Workspace, error)
	RunCommand(ctx context.Context, command string) error
}

// EventSource delivers window events from a subscribed connection
type EventSource interface {
	NextWindowEvent(ctx context.Context) (*ipc.WindowEvent, error)
	Close() error
}

// SubscribeFunc establishes a fresh event subscription. The engine calls
// it at startup and again after a stream failure.
type SubscribeFunc func(ctx context.Context) (EventSource, error)

// Options configures an Engine
type Options struct {
	// Ratio is the aspect threshold: a vertical split is selected when
	// height > width / Ratio.
	Ratio float64

	// Workspaces is an optional allow-list of workspace names. When
	// non-empty, events on other workspaces are ignored.
	Workspaces []string

	// ReconnectDelay is the pause between failed reconnect attempts.
	// Defaults to DefaultReconnectDelay.
	ReconnectDelay time.Duration

	Logger zerolog.Logger
}

// Engine applies the auto-split rule: on each focus change, pick the
// split direction from the focused window's aspect ratio and switch the
// parent container's layout when it differs.
type Engine struct {
	client         CommandClient
	ratio          float64
	workspaces     []string
	reconnectDelay time.Duration
	logger         zerolog.Logger
}

// New creates an engine driving the given command client
func New(client CommandClient, opts Options) *Engine {
	ratio := opts.Ratio
	if ratio <= 0 {
		ratio = 1.0
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	return &Engine{
		client:         client,
		ratio:          ratio,
		workspaces:     opts.Workspaces,
		reconnectDelay: delay,
		logger:         opts.Logger,
	}
}

// Decide computes the split command for a focused node within its parent.
// It returns false when the situation is not a split candidate: the node
// is fullscreen (percent above 1.0), floating, tabbed/stacked (itself or
// its parent), or the parent already has the desired layout.
func Decide(parent, focused *ipc.Node, ratio float64) (string, bool) {
	if shouldSkip(parent, focused) {
		return "", false
	}

	height := float64(focused.Rect.Height)
	width := float64(focused.Rect.Width)

	desired := ipc.LayoutSplitH
	if height > width/ratio {
		desired = ipc.LayoutSplitV
	}

	if desired == parent.Layout {
		return "", false
	}
	return desired.Command(), true
}

// shouldSkip filters out nodes that are not split-direction candidates
func shouldSkip(parent, focused *ipc.Node) bool {
	if focused.Percent != nil && *focused.Percent > 1.0 {
		return true
	}
	if focused.IsFloating() {
		return true
	}
	switch focused.Layout {
	case ipc.LayoutTabbed, ipc.LayoutStacked:
		return true
	}
	switch parent.Layout {
	case ipc.LayoutTabbed, ipc.LayoutStacked:
		return true
	}
	return false
}

// RunOnce applies the rule against the current tree, issuing at most one
// command. Doing nothing is a valid outcome: no focused node, a skipped
// layout, or a parent already in the desired layout.
func (e *Engine) RunOnce(ctx context.Context) error {
	if len(e.workspaces) > 0 {
		allowed, err := e.onAllowedWorkspace(ctx)
		if err != nil {
			return err
		}
		if !allowed {
			return nil
		}
	}

	tree, err := e.client.GetTree(ctx)
	if err != nil {
		return err
	}

	parent := tree.FindFocusedParent()
	if parent == nil {
		return nil
	}
	focused := parent.FocusedChild()
	if focused == nil {
		return nil
	}

	command, ok := Decide(parent, focused, e.ratio)
	if !ok {
		return nil
	}

	if err := e.client.RunCommand(ctx, command); err != nil {
		return err
	}
	e.logger.Info().
		Str("command", command).
		Int64("width", focused.Rect.Width).
		Int64("height", focused.Rect.Height).
		Msg("focus changed, split direction updated")
	return nil
}

// onAllowedWorkspace reports whether the focused workspace is in the
// allow-list. An absent focused workspace counts as not allowed.
func (e *Engine) onAllowedWorkspace(ctx context.Context) (bool, error) {
	workspaces, err := e.client.GetWorkspaces(ctx)
	if err != nil {
		return false, err
	}
	for _, ws := range workspaces {
		if ws.Focused {
			return slices.Contains(e.workspaces, ws.Name), nil
		}
	}
	return false, nil
}

// Run consumes window events until ctx is cancelled, applying the rule on
// each focus change. Per-event errors are logged and the loop continues;
// a broken event stream triggers reconnect attempts every reconnectDelay.
// The initial subscription error is returned as-is so startup failures
// stay fatal.
func (e *Engine) Run(ctx context.Context, subscribe SubscribeFunc) error {
	events, err := subscribe(ctx)
	if err != nil {
		return err
	}
	defer func() { events.Close() }()

	for {
		ev, err := events.NextWindowEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.logger.Error().Err(err).Msg("event stream error, reconnecting")
			events.Close()
			events, err = e.reconnect(ctx, subscribe)
			if err != nil {
				return err
			}
			continue
		}

		if ev.Change != ipc.WindowFocus {
			continue
		}
		if err := e.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.logger.Error().Err(err).Msg("auto-tiling failed")
		}
	}
}

// reconnect retries the subscription until it succeeds or ctx is cancelled
func (e *Engine) reconnect(ctx context.Context, subscribe SubscribeFunc) (EventSource, error) {
	for {
		events, err := subscribe(ctx)
		if err == nil {
			e.logger.Info().Msg("event stream reconnected")
			return events, nil
		}
		e.logger.Error().
			Err(err).
			Dur("retry_in", e.reconnectDelay).
			Msg("reconnect failed")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.reconnectDelay):
		}
	}
}
