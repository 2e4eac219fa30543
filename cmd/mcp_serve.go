package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPServeCmd() *cobra.Command {
	var (
		useHTTP bool
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "mcp-serve",
		Short: "Run the MCP server",
		Long: `Starts a Model Context Protocol (MCP) server exposing the GDELT tools.
The default transport is stdio. With --http the server speaks the
streamable HTTP transport and answers GET /health.

Available tools:
  - search_articles: Articles matching a query
  - timeline: Coverage volume, tone, language or country over time
  - tone_chart: Tone histogram of matching coverage
  - geo_search: Locations mentioned in matching coverage
  - image_search: Articles with a social sharing image
  - monitor: Newest articles within a short interval

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "gdelt": {
        "command": "/path/to/gdeltctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dispatcher == nil {
				return cmd.Help()
			}
			server := mcptools.CreateMCPServer(dispatcher, version)
			ctx := cmd.Context()

			if !useHTTP {
				logger.Info("starting MCP server", "transport", "stdio", "version", version)
				return server.Run(ctx, &mcp.StdioTransport{})
			}

			if addr == "" {
				addr = appConfig.HTTPAddr
			}
			return serveHTTP(ctx, addr, mcptools.NewHTTPHandler(server))
		},
	}

	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve the streamable HTTP transport instead of stdio")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for --http (default from config http_addr)")
	return cmd
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting MCP server", "transport", "http", "addr", addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
