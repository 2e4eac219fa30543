package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// monitorTextLimit caps how many articles the text view lists.
const monitorTextLimit = 10

// MonitorHandler returns the handler for the monitor tool. The window is
// the interval itself, newest first, at the maximum page size.
func MonitorHandler(f Fetcher) func(ctx context.Context, p MonitorParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p MonitorParams) (*mcp.CallToolResult, error) {
		raw, err := f.FetchDocuments(ctx, gdelt.DocQuery{
			Query:      p.Query,
			Mode:       gdelt.ModeArtList,
			Timespan:   p.Interval,
			MaxRecords: monitorMaxRecords,
			Sort:       "DateDesc",
		})
		if err != nil {
			return nil, err
		}
		list, err := gdelt.DecodeArticleList(raw)
		if err != nil {
			return nil, err
		}
		articles := list.Articles

		shown := articles
		if len(shown) > monitorTextLimit {
			shown = shown[:monitorTextLimit]
		}
		text := fmt.Sprintf("Monitoring \"%s\" (last %s):\n\nFound %d recent articles:", p.Query, p.Interval, len(articles))
		if len(shown) > 0 {
			text += "\n\n" + numbered(shown, func(a gdelt.Article) string {
				return fmt.Sprintf("%s\n   URL: %s\n   Domain: %s\n   Date: %s",
					cleanText(a.Title), a.URL, a.Domain, a.SeenDate)
			})
		}
		if len(articles) > monitorTextLimit {
			text += moreNote
		}

		return textResult(text, MonitorOutput{
			Articles: articles,
			Count:    len(articles),
			Interval: p.Interval,
			Query:    p.Query,
		}), nil
	}
}
