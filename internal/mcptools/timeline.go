package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TimelineHandler returns the handler for the timeline tool.
func TimelineHandler(f Fetcher) func(ctx context.Context, p TimelineParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p TimelineParams) (*mcp.CallToolResult, error) {
		mode := timelineModes[p.TimelineType]
		raw, err := f.FetchDocuments(ctx, gdelt.DocQuery{
			Query:          p.Query,
			Mode:           mode,
			Timespan:       docWindow(p.Timespan, p.StartDateTime, p.EndDateTime),
			StartDateTime:  p.StartDateTime,
			EndDateTime:    p.EndDateTime,
			TimelineSmooth: p.Smooth,
		})
		if err != nil {
			return nil, err
		}
		resp, err := gdelt.DecodeTimeline(mode, raw)
		if err != nil {
			return nil, err
		}

		// Only the first series is reported; language and country modes
		// return one series per value.
		timeline := resp.First()

		var b strings.Builder
		fmt.Fprintf(&b, "Timeline analysis (%s):", p.TimelineType)
		if len(timeline) > 0 {
			b.WriteString("\n")
			for _, e := range timeline {
				fmt.Fprintf(&b, "\n%s: %s", e.Date, formatNumber(e.Value))
			}
		}

		return textResult(b.String(), TimelineOutput{
			Timeline: timeline,
			Type:     p.TimelineType,
			Count:    len(timeline),
		}), nil
	}
}
