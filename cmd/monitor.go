package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/chris-regnier/gdeltctl/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMonitorCmd() *cobra.Command {
	var (
		interval string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "monitor <query...>",
		Short: "Show the newest coverage of a query",
		Long: `List articles published within the last interval, newest first.
With --watch the query is re-run every interval in a full-screen view.`,
		Example: `  gdeltctl monitor '"power outage"' --interval 1h
  gdeltctl monitor 'sourcecountry:japan earthquake' --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "interval", "interval", interval)

			if !watch {
				return runTool(cmd, mcptools.ToolMonitor, args)
			}
			return watchMonitor(cmd, args, interval)
		},
	}

	cmd.Flags().StringVarP(&interval, "interval", "i", "15min", "look-back window (15min|1h|3h)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "refresh every interval in a full-screen view")
	return cmd
}

// Terminal checks and the full-screen view, replaced in tests.
var (
	isTerminal = ui.IsTerminal
	runWatch   = ui.Watch
)

// watchMonitor runs the first call up front, so bad arguments and remote
// errors fail before the screen switches, and hands its result to the view.
func watchMonitor(cmd *cobra.Command, args map[string]any, interval string) error {
	w := cmd.OutOrStdout()
	if jsonOutput || !isTerminal(w) {
		return errors.New("--watch needs an interactive terminal and cannot be combined with --json")
	}
	every, err := intervalDuration(interval)
	if err != nil {
		return err
	}
	first, err := callTool(cmd.Context(), mcptools.ToolMonitor, args)
	if err != nil {
		return err
	}
	fetch := func(ctx context.Context) *mcp.CallToolResult {
		res, err := callTool(ctx, mcptools.ToolMonitor, args)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
			}
		}
		return res
	}
	title := fmt.Sprintf("monitor %s", args["query"])
	return runWatch(cmd.Context(), w, title, every, first, fetch, outputView(w))
}

func intervalDuration(interval string) (time.Duration, error) {
	switch interval {
	case "15min":
		return 15 * time.Minute, nil
	case "1h":
		return time.Hour, nil
	case "3h":
		return 3 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid interval: %q is not one of 15min, 1h, 3h", interval)
}
