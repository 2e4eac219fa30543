package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/microcosm-cc/bluemonday"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Fetcher is the remote side of the tools. *gdelt.Client implements it.
type Fetcher interface {
	FetchDocuments(ctx context.Context, q gdelt.DocQuery) (json.RawMessage, error)
	FetchGeo(ctx context.Context, q gdelt.GeoQuery) (json.RawMessage, error)
}

const moreNote = "\n\n... and more (see structured data)"

// stripPolicy removes markup that occasionally leaks into remote titles.
var stripPolicy = bluemonday.StrictPolicy()

// textResult builds a tool result with a text summary and structured payload.
func textResult(text string, structured any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: structured,
	}
}

// errorResult builds the error-shaped result returned for every failure.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// ResultText returns the text of the first text content block.
func ResultText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// cleanText strips tags from s and collapses it to a single line.
func cleanText(s string) string {
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numbered renders items as "1. ...", separated by blank lines.
func numbered[T any](items []T, render func(T) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d. %s", i+1, render(item))
	}
	return strings.Join(parts, "\n\n")
}

// docWindow returns the timespan to send, or "" when absolute bounds replace it.
func docWindow(timespan, start, end string) string {
	if start != "" || end != "" {
		return ""
	}
	return timespan
}
