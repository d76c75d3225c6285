package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/autotile/internal/autotile"
	"github.com/yourusername/autotile/internal/ipc"
	"github.com/yourusername/autotile/internal/logging"
	"github.com/yourusername/autotile/internal/output"
)

var (
	socketPath string
	noColor    bool
	debugMode  bool
	jsonOutput bool

	ratio          float64
	workspaceNames []string
	runOnce        bool
	quiet          bool

	// Color functions
	errorColor = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgCyan)
)

// rootCmd runs the auto-tiling daemon
var rootCmd = &cobra.Command{
	Use:   "autotile",
	Short: "Automatic split direction for sway/i3",
	Long: `Autotile runs in the background and listens for window focus events
from sway or i3. On each focus change it compares the focused window's
height and width against a ratio threshold and switches the parent
container between horizontal and vertical split, so the next window
opens in the direction with the most room.

With --once the rule is applied a single time and the process exits,
which is useful for key bindings and scripting.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE:         runAutotile,
}

// workspacesCmd lists workspaces
var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List workspaces",
	Long:  `Queries the window manager and prints the current workspace list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		defer client.Close()

		workspaces, err := client.GetWorkspaces(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Failed to get workspaces: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(workspaces)
		}
		output.PrintWorkspacesTable(workspaces)
		return nil
	},
}

// treeCmd shows the window tree
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the window tree",
	Long: `Queries the window manager tree and prints its containers and
windows. Use --json for the raw tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		defer client.Close()

		tree, err := client.GetTree(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Failed to get tree: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(tree)
		}

		var nodes []*ipc.Node
		tree.Walk(func(n *ipc.Node) {
			if n.Type == ipc.NodeCon || n.Type == ipc.NodeFloatingCon || n.Type == ipc.NodeWorkspace {
				nodes = append(nodes, n)
			}
		})
		output.PrintNodesTable(nodes)
		return nil
	},
}

// runAutotile is the root command: one-shot or daemon mode
func runAutotile(cmd *cobra.Command, args []string) error {
	logging.Init(quiet, debugMode)
	if quiet {
		cmd.SilenceErrors = true
	}

	if ratio <= 0 {
		return fmt.Errorf("ratio must be positive, got %v", ratio)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	engine := autotile.New(client, autotile.Options{
		Ratio:      ratio,
		Workspaces: workspaceNames,
		Logger:     logging.Logger,
	})

	if runOnce {
		return engine.RunOnce(ctx)
	}

	printInfo("autotile started, listening for window events...")

	err = engine.Run(ctx, func(ctx context.Context) (autotile.EventSource, error) {
		events, err := connect()
		if err != nil {
			return nil, err
		}
		if err := events.Subscribe(ctx, ipc.EventWindow); err != nil {
			events.Close()
			return nil, err
		}
		return events, nil
	})
	if errors.Is(err, context.Canceled) {
		// Clean shutdown via SIGINT/SIGTERM
		return nil
	}
	return err
}

// connect resolves the socket path and opens a connection
func connect() (*ipc.Client, error) {
	path := socketPath
	if path == "" {
		var err error
		path, err = ipc.SocketPath()
		if err != nil {
			return nil, err
		}
	}

	client := ipc.NewClient(path)
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Window manager socket path (default: autodetect)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Daemon flags
	rootCmd.Flags().Float64Var(&ratio, "ratio", 1.0, "Aspect ratio threshold: split vertically when height > width/ratio")
	rootCmd.Flags().StringSliceVar(&workspaceNames, "workspace", nil, "Only act on these workspaces (comma-separated names)")
	rootCmd.Flags().BoolVar(&runOnce, "once", false, "Apply the rule once and exit")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output")

	// Inspection commands
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(treeCmd)
	workspacesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	treeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printInfo(msg string) {
	if quiet {
		return
	}
	if noColor {
		fmt.Println(msg)
	} else {
		infoColor.Println(msg)
	}
}

func printError(msg string) {
	if quiet {
		return
	}
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
