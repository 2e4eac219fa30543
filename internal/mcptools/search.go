package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArticlesHandler returns the handler for the search_articles tool.
func SearchArticlesHandler(f Fetcher) func(ctx context.Context, p SearchArticlesParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p SearchArticlesParams) (*mcp.CallToolResult, error) {
		raw, err := f.FetchDocuments(ctx, gdelt.DocQuery{
			Query:         p.Query,
			Mode:          gdelt.ModeArtList,
			Timespan:      docWindow(p.Timespan, p.StartDateTime, p.EndDateTime),
			StartDateTime: p.StartDateTime,
			EndDateTime:   p.EndDateTime,
			MaxRecords:    p.MaxRecords,
			Sort:          p.Sort,
		})
		if err != nil {
			return nil, err
		}
		list, err := gdelt.DecodeArticleList(raw)
		if err != nil {
			return nil, err
		}

		text := fmt.Sprintf("Found %d articles:", len(list.Articles))
		if len(list.Articles) > 0 {
			text += "\n\n" + numbered(list.Articles, func(a gdelt.Article) string {
				return fmt.Sprintf("%s\n   URL: %s\n   Domain: %s\n   Language: %s\n   Country: %s\n   Date: %s",
					cleanText(a.Title), a.URL, a.Domain, a.Language, a.SourceCountry, a.SeenDate)
			})
		}

		return textResult(text, SearchArticlesOutput{
			Articles: list.Articles,
			Count:    len(list.Articles),
		}), nil
	}
}
