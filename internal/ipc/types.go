package ipc

// Rect represents pixel bounds as reported by the window manager
type Rect struct {
	X      int64 `json:"x"`
	Y      int64 `json:"y"`
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// NodeType categorizes a node in the window manager tree
type NodeType string

const (
	NodeRoot        NodeType = "root"
	NodeOutput      NodeType = "output"
	NodeCon         NodeType = "con"
	NodeFloatingCon NodeType = "floating_con"
	NodeWorkspace   NodeType = "workspace"
	NodeDockArea    NodeType = "dockarea"
)

// Layout describes how a container arranges its children
type Layout string

const (
	LayoutSplitH  Layout = "splith"
	LayoutSplitV  Layout = "splitv"
	LayoutStacked Layout = "stacked"
	LayoutTabbed  Layout = "tabbed"
	LayoutOutput  Layout = "output"
	LayoutNone    Layout = "none"
)

// Command returns the IPC command that switches a container to this layout.
// Only the two split layouts have a corresponding command.
func (l Layout) Command() string {
	switch l {
	case LayoutSplitV:
		return "splitv"
	case LayoutSplitH:
		return "splith"
	}
	return ""
}

// Node is one entry in the window manager's tree (GET_TREE reply).
// Percent is nil when the window manager reports null; a value above 1.0
// indicates a fullscreen container.
type Node struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          NodeType `json:"type"`
	Layout        Layout   `json:"layout"`
	Percent       *float64 `json:"percent"`
	Rect          Rect     `json:"rect"`
	Focused       bool     `json:"focused"`
	Nodes         []*Node  `json:"nodes"`
	FloatingNodes []*Node  `json:"floating_nodes"`
}

// FindFocusedParent returns the node whose direct children include the
// focused node, searching tiling and floating children. Returns nil when
// no descendant of n is focused.
func (n *Node) FindFocusedParent() *Node {
	for _, child := range n.Nodes {
		if child.Focused {
			return n
		}
	}
	for _, child := range n.FloatingNodes {
		if child.Focused {
			return n
		}
	}
	for _, child := range n.Nodes {
		if p := child.FindFocusedParent(); p != nil {
			return p
		}
	}
	for _, child := range n.FloatingNodes {
		if p := child.FindFocusedParent(); p != nil {
			return p
		}
	}
	return nil
}

// FocusedChild returns the direct child of n that holds focus, or nil.
func (n *Node) FocusedChild() *Node {
	for _, child := range n.Nodes {
		if child.Focused {
			return child
		}
	}
	for _, child := range n.FloatingNodes {
		if child.Focused {
			return child
		}
	}
	return nil
}

// IsFloating reports whether the node is a floating container.
func (n *Node) IsFloating() bool {
	return n.Type == NodeFloatingCon
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Nodes {
		child.Walk(visit)
	}
	for _, child := range n.FloatingNodes {
		child.Walk(visit)
	}
}

// Workspace is one entry in the GET_WORKSPACES reply
type Workspace struct {
	Num     int64  `json:"num"`
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
	Visible bool   `json:"visible"`
	Urgent  bool   `json:"urgent"`
	Output  string `json:"output"`
	Rect    Rect   `json:"rect"`
}

// CommandResult is one entry in the RUN_COMMAND reply
type CommandResult struct {
	Success    bool   `json:"success"`
	ParseError bool   `json:"parse_error"`
	Error      string `json:"error"`
}

// EventType names an event class for SUBSCRIBE
type EventType string

const (
	EventWindow    EventType = "window"
	EventWorkspace EventType = "workspace"
	EventShutdown  EventType = "shutdown"
)

// WindowEventChange is the change field of a window event
type WindowEventChange string

const (
	WindowNew            WindowEventChange = "new"
	WindowClose          WindowEventChange = "close"
	WindowFocus          WindowEventChange = "focus"
	WindowTitle          WindowEventChange = "title"
	WindowFullscreenMode WindowEventChange = "fullscreen_mode"
	WindowMove           WindowEventChange = "move"
	WindowFloating       WindowEventChange = "floating"
	WindowUrgent         WindowEventChange = "urgent"
	WindowMark           WindowEventChange = "mark"
)

// WindowEvent is the payload of a window event
type WindowEvent struct {
	Change    WindowEventChange `json:"change"`
	Container Node              `json:"container"`
}
