package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/autotile/internal/ipc"

	"golang.org/x/sys/unix"
)

// PrintWorkspacesTable prints workspaces in a table format
func PrintWorkspacesTable(workspaces []ipc.Workspace) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Num", "Name", "Output", "Visible", "Focused", "Urgent")

	// Sort by workspace number
	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].Num < workspaces[j].Num
	})

	for _, ws := range workspaces {
		table.Append(
			fmt.Sprintf("%d", ws.Num),
			truncate(ws.Name, nameWidth()),
			ws.Output,
			checkmark(ws.Visible),
			checkmark(ws.Focused),
			checkmark(ws.Urgent),
		)
	}

	table.Render()
}

// PrintNodesTable prints tree nodes in a table format
func PrintNodesTable(nodes []*ipc.Node) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Type", "Layout", "Geometry", "Focused", "Name")

	for _, node := range nodes {
		geometry := fmt.Sprintf("%dx%d+%d+%d",
			node.Rect.Width, node.Rect.Height, node.Rect.X, node.Rect.Y)

		table.Append(
			fmt.Sprintf("%d", node.ID),
			string(node.Type),
			string(node.Layout),
			geometry,
			checkmark(node.Focused),
			truncate(node.Name, nameWidth()),
		)
	}

	table.Render()
}

// checkmark renders a boolean flag for table cells
func checkmark(v bool) string {
	if v {
		return "✓"
	}
	return ""
}

// truncate shortens a string to maxLen with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// nameWidth budgets the name column from the terminal width, leaving room
// for the fixed-width columns.
func nameWidth() int {
	width := 80
	if ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ); err == nil && ws.Col > 0 {
		width = int(ws.Col)
	}
	if width > 50 {
		return width - 50
	}
	return 30
}
