package mcptools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const timespanHelp = "Time window ending now, as <n> followed by min, h, d, w or m (months), e.g. 15min, 24h, 3d, 1w, 2m"

func searchArticlesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolSearchArticles,
		Description: "Search GDELT for news articles matching a query with optional filters (domain, country, language, tone, etc.)",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":          queryProp(),
			"timespan":       timespanProp("3d"),
			"maxrecords":     intProp("Maximum number of articles to return", 75, minRecords, maxRecords),
			"sort":           enumProp("Sort order for results", "DateDesc", sortOrders),
			"start_datetime": compactProp("Absolute window start (YYYYMMDDHHMMSS); overrides timespan"),
			"end_datetime":   compactProp("Absolute window end (YYYYMMDDHHMMSS); overrides timespan"),
		}),
	}
}

func timelineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolTimeline,
		Description: "Get a timeline of news coverage volume, tone, language or source country for a query over time",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":          queryProp(),
			"timespan":       timespanProp("1w"),
			"timeline_type":  enumProp("Which measure to chart", "volume", timelineTypes),
			"smooth":         intProp("Moving average window in steps", 0, minSmooth, maxSmooth),
			"start_datetime": compactProp("Absolute window start (YYYYMMDDHHMMSS); overrides timespan"),
			"end_datetime":   compactProp("Absolute window end (YYYYMMDDHHMMSS); overrides timespan"),
		}),
	}
}

func toneChartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolToneChart,
		Description: "Get the emotional tone distribution of news coverage for a query",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":    queryProp(),
			"timespan": timespanProp("3d"),
		}),
	}
}

func geoSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolGeoSearch,
		Description: "Find geographic locations mentioned in news coverage of a query, as GeoJSON points",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":     queryProp(),
			"timespan":  timespanProp("1d"),
			"maxpoints": intProp("Maximum number of locations to return", 100, minPoints, maxPoints),
		}),
	}
}

func imageSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolImageSearch,
		Description: "Find news articles with associated social images for a query",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":      queryProp(),
			"timespan":   timespanProp("3d"),
			"maxrecords": intProp("Maximum number of articles to scan for images", 75, minRecords, maxRecords),
		}),
	}
}

func monitorTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolMonitor,
		Description: "Monitor the most recent news coverage of a query over a short interval",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":    queryProp(),
			"interval": enumProp("How far back to look", "15min", intervals),
		}),
	}
}

func objectSchema(props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"query"},
	}
}

func queryProp() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Search query using GDELT query syntax (phrases in quotes, OR, -exclusions, domain:, sourcecountry:, sourcelang:, tone<)",
		MinLength:   ptr(1),
	}
}

func timespanProp(def string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: timespanHelp,
		Pattern:     `^\d+(min|h|d|w|m)$`,
		Default:     mustJSON(def),
	}
}

func compactProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: desc,
		Pattern:     `^\d{8}(\d{2}){0,3}$`,
	}
}

// intProp describes a bounded integer. A zero def leaves the default unset.
func intProp(desc string, def, min, max int) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        "integer",
		Description: desc,
		Minimum:     ptr(float64(min)),
		Maximum:     ptr(float64(max)),
	}
	if def != 0 {
		s.Default = mustJSON(def)
	}
	return s
}

func enumProp(desc, def string, values []string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &jsonschema.Schema{
		Type:        "string",
		Description: desc,
		Enum:        enum,
		Default:     mustJSON(def),
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func ptr[T any](v T) *T { return &v }
