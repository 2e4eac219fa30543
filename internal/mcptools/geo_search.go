package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// geoTextLimit caps how many locations the text view lists.
const geoTextLimit = 20

// GeoSearchHandler returns the handler for the geo_search tool.
func GeoSearchHandler(f Fetcher) func(ctx context.Context, p GeoSearchParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p GeoSearchParams) (*mcp.CallToolResult, error) {
		raw, err := f.FetchGeo(ctx, gdelt.GeoQuery{
			Query:     p.Query,
			Mode:      gdelt.ModePointData,
			Timespan:  p.Timespan,
			MaxPoints: p.MaxPoints,
		})
		if err != nil {
			return nil, err
		}
		resp, err := gdelt.DecodeGeo(raw)
		if err != nil {
			return nil, err
		}
		features := resp.Features

		shown := features
		if len(shown) > geoTextLimit {
			shown = shown[:geoTextLimit]
		}
		text := fmt.Sprintf("Found %d geographic locations:", len(features))
		if len(shown) > 0 {
			text += "\n\n" + numbered(shown, func(f gdelt.GeoFeature) string {
				return fmt.Sprintf("%s (%d mentions)\n   Coordinates: %s",
					cleanText(f.Properties.Name), f.Properties.Count, latLon(f.Geometry.Coordinates))
			})
		}
		if len(features) > geoTextLimit {
			text += moreNote
		}

		return textResult(text, GeoSearchOutput{
			Type:     "FeatureCollection",
			Features: features,
			Count:    len(features),
		}), nil
	}
}

// latLon renders GeoJSON [lon, lat] coordinates as [lat, lon].
func latLon(coords []float64) string {
	if len(coords) < 2 {
		return "unknown"
	}
	return fmt.Sprintf("[%s, %s]", formatNumber(coords[1]), formatNumber(coords[0]))
}
