package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ImageSearchHandler returns the handler for the image_search tool. The
// image gallery modes only render HTML, so images are taken from the social
// image of ArtList results.
func ImageSearchHandler(f Fetcher) func(ctx context.Context, p ImageSearchParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p ImageSearchParams) (*mcp.CallToolResult, error) {
		raw, err := f.FetchDocuments(ctx, gdelt.DocQuery{
			Query:      p.Query,
			Mode:       gdelt.ModeArtList,
			Timespan:   p.Timespan,
			MaxRecords: p.MaxRecords,
		})
		if err != nil {
			return nil, err
		}
		list, err := gdelt.DecodeArticleList(raw)
		if err != nil {
			return nil, err
		}

		withImages := []gdelt.Article{}
		images := []gdelt.ImageInfo{}
		for _, a := range list.Articles {
			if a.SocialImage == "" {
				continue
			}
			withImages = append(withImages, a)
			images = append(images, gdelt.ImageInfo{URL: a.SocialImage})
		}

		text := fmt.Sprintf("Found %d articles with images:", len(withImages))
		if len(withImages) > 0 {
			text += "\n\n" + numbered(withImages, func(a gdelt.Article) string {
				return fmt.Sprintf("%s\n   Image: %s\n   Source: %s\n   URL: %s",
					cleanText(a.Title), a.SocialImage, a.Domain, a.URL)
			})
		}

		return textResult(text, ImageSearchOutput{
			Articles: withImages,
			Images:   images,
			Count:    len(withImages),
		}), nil
	}
}
