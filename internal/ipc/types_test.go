package ipc

import (
	"testing"
)

// Test tree:
// root
// └── output
//     └── workspace "1" (splith)
//         ├── con left
//         └── con right (splitv)
//             ├── con top (focused)
//             └── con bottom
func makeTestTree() *Node {
	return &Node{
		ID:   1,
		Type: NodeRoot,
		Nodes: []*Node{
			{
				ID:     2,
				Type:   NodeOutput,
				Layout: LayoutOutput,
				Nodes: []*Node{
					{
						ID:     3,
						Name:   "1",
						Type:   NodeWorkspace,
						Layout: LayoutSplitH,
						Nodes: []*Node{
							{ID: 4, Name: "left", Type: NodeCon},
							{
								ID:     5,
								Type:   NodeCon,
								Layout: LayoutSplitV,
								Nodes: []*Node{
									{ID: 6, Name: "top", Type: NodeCon, Focused: true},
									{ID: 7, Name: "bottom", Type: NodeCon},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestFindFocusedParent(t *testing.T) {
	tree := makeTestTree()

	parent := tree.FindFocusedParent()
	if parent == nil {
		t.Fatal("expected to find focused parent")
	}
	if parent.ID != 5 {
		t.Errorf("expected parent ID 5, got %d", parent.ID)
	}

	focused := parent.FocusedChild()
	if focused == nil {
		t.Fatal("expected to find focused child")
	}
	if focused.ID != 6 {
		t.Errorf("expected focused ID 6, got %d", focused.ID)
	}
}

func TestFindFocusedParent_NoFocus(t *testing.T) {
	tree := makeTestTree()
	tree.Walk(func(n *Node) { n.Focused = false })

	if parent := tree.FindFocusedParent(); parent != nil {
		t.Errorf("expected nil parent, got node %d", parent.ID)
	}
}

func TestFindFocusedParent_Floating(t *testing.T) {
	tree := makeTestTree()
	tree.Walk(func(n *Node) { n.Focused = false })

	workspace := tree.Nodes[0].Nodes[0]
	workspace.FloatingNodes = []*Node{
		{ID: 10, Name: "dialog", Type: NodeFloatingCon, Focused: true},
	}

	parent := tree.FindFocusedParent()
	if parent == nil {
		t.Fatal("expected to find focused parent")
	}
	if parent.ID != workspace.ID {
		t.Errorf("expected parent ID %d, got %d", workspace.ID, parent.ID)
	}

	focused := parent.FocusedChild()
	if focused == nil || focused.ID != 10 {
		t.Fatalf("expected floating child 10, got %v", focused)
	}
	if !focused.IsFloating() {
		t.Error("expected focused child to be floating")
	}
}

func TestWalk(t *testing.T) {
	tree := makeTestTree()

	var ids []int64
	tree.Walk(func(n *Node) { ids = append(ids, n.ID) })

	if len(ids) != 7 {
		t.Errorf("expected 7 nodes, got %d (%v)", len(ids), ids)
	}
	if ids[0] != 1 {
		t.Errorf("expected root first, got %d", ids[0])
	}
}

func TestLayoutCommand(t *testing.T) {
	if cmd := LayoutSplitV.Command(); cmd != "splitv" {
		t.Errorf("expected 'splitv', got %q", cmd)
	}
	if cmd := LayoutSplitH.Command(); cmd != "splith" {
		t.Errorf("expected 'splith', got %q", cmd)
	}
	if cmd := LayoutTabbed.Command(); cmd != "" {
		t.Errorf("expected empty command for tabbed, got %q", cmd)
	}
}
