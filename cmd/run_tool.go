package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/gdeltctl/internal/config"
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/chris-regnier/gdeltctl/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// callTool runs a tool through the dispatcher and turns an error result
// into a Go error.
func callTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if dispatcher == nil {
		return nil, errors.New("runtime not initialized")
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments: %w", err)
	}
	res := dispatcher.Call(ctx, name, raw)
	if res.IsError {
		return nil, errors.New(strings.TrimPrefix(mcptools.ResultText(res), "Error: "))
	}
	return res, nil
}

// runTool calls a tool and writes its result to the command's output.
func runTool(cmd *cobra.Command, name string, args map[string]any) error {
	res, err := callTool(cmd.Context(), name, args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	view := outputView(w)
	out, err := ui.RenderResult(res, view)
	if err != nil {
		return err
	}
	if jsonOutput {
		_, err = fmt.Fprint(w, out)
		return err
	}
	return ui.OutputOrPage(w, name, out, view.Theme)
}

func outputView(w io.Writer) ui.View {
	theme := ui.ResolveTheme(config.ThemeConfig{})
	if appConfig != nil {
		theme = ui.ResolveTheme(appConfig.Theme)
	}
	return ui.View{
		JSON:   jsonOutput,
		Styled: ui.IsTerminal(w),
		Width:  min(ui.TerminalWidth(w, 100), 120),
		Theme:  theme,
	}
}

// queryArgs starts a tool argument map from positional words.
func queryArgs(words []string) map[string]any {
	return map[string]any{"query": strings.Join(words, " ")}
}

// setIfChanged copies a flag into args only when the user set it, so the
// tool's own defaults apply otherwise.
func setIfChanged(cmd *cobra.Command, args map[string]any, flag, key string, value any) {
	if cmd.Flags().Changed(flag) {
		args[key] = value
	}
}
