package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewGDELTMCPServer creates an in-memory MCP server exposing the GDELT tools.
// Returns the server and a client transport for connecting to it.
func NewGDELTMCPServer(d *Dispatcher) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(d, "")

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with every registered tool routed
// through d. Calls naming an unregistered tool also reach d, so they come
// back as error results rather than protocol errors. An empty version
// reports "dev".
func CreateMCPServer(d *Dispatcher, version string) *mcp.Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gdeltctl",
		Version: version,
	}, nil)

	for _, def := range d.Registry().Definitions() {
		server.AddTool(def, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Call(ctx, req.Params.Name, req.Params.Arguments), nil
		})
	}
	server.AddReceivingMiddleware(unknownToolMiddleware(d))

	return server
}

// unknownToolMiddleware hands tools/call requests for unregistered names to
// the dispatcher, which the SDK would otherwise reject before any handler.
func unknownToolMiddleware(d *Dispatcher) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			call, ok := req.(*mcp.CallToolRequest)
			if method != "tools/call" || !ok || call.Params == nil {
				return next(ctx, method, req)
			}
			if _, known := d.Registry().Lookup(call.Params.Name); known {
				return next(ctx, method, req)
			}
			return d.Call(ctx, call.Params.Name, call.Params.Arguments), nil
		}
	}
}

// NewHTTPHandler serves server over streamable HTTP, with a liveness probe
// at /health.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	return mux
}
