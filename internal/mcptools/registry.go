package mcptools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleFunc runs a tool against raw JSON arguments.
type HandleFunc func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error)

// Tool pairs a definition with its handler.
type Tool struct {
	Definition *mcp.Tool
	Handle     HandleFunc
}

// Registry is the fixed set of tools. It is built once and never mutated.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers every tool against f.
func NewRegistry(f Fetcher) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.add(searchArticlesTool(), bind(ParseSearchArticles, SearchArticlesHandler(f)))
	r.add(timelineTool(), bind(ParseTimeline, TimelineHandler(f)))
	r.add(toneChartTool(), bind(ParseToneChart, ToneChartHandler(f)))
	r.add(geoSearchTool(), bind(ParseGeoSearch, GeoSearchHandler(f)))
	r.add(imageSearchTool(), bind(ParseImageSearch, ImageSearchHandler(f)))
	r.add(monitorTool(), bind(ParseMonitor, MonitorHandler(f)))
	return r
}

func (r *Registry) add(def *mcp.Tool, h HandleFunc) {
	r.tools[def.Name] = Tool{Definition: def, Handle: h}
	r.order = append(r.order, def.Name)
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Definitions lists tool definitions in registration order.
func (r *Registry) Definitions() []*mcp.Tool {
	defs := make([]*mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// bind validates arguments before the handler sees them, so a handler is
// never reached with invalid parameters.
func bind[P any](parse func(json.RawMessage) (P, error), handle func(context.Context, P) (*mcp.CallToolResult, error)) HandleFunc {
	return func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
		p, err := parse(args)
		if err != nil {
			return nil, err
		}
		return handle(ctx, p)
	}
}
