package mcptools

import "github.com/chris-regnier/gdeltctl/internal/gdelt"

// Tool names.
const (
	ToolSearchArticles = "search_articles"
	ToolTimeline       = "timeline"
	ToolToneChart      = "tone_chart"
	ToolGeoSearch      = "geo_search"
	ToolImageSearch    = "image_search"
	ToolMonitor        = "monitor"
)

// Input types mirror the JSON arguments of each tool. Pointer fields are
// optional and take their default when nil.

// SearchArticlesInput is the input for the search_articles tool.
type SearchArticlesInput struct {
	Query         string  `json:"query"`
	Timespan      *string `json:"timespan,omitempty"`
	MaxRecords    *int    `json:"maxrecords,omitempty"`
	Sort          *string `json:"sort,omitempty"`
	StartDateTime *string `json:"start_datetime,omitempty"`
	EndDateTime   *string `json:"end_datetime,omitempty"`
}

// TimelineInput is the input for the timeline tool.
type TimelineInput struct {
	Query         string  `json:"query"`
	Timespan      *string `json:"timespan,omitempty"`
	TimelineType  *string `json:"timeline_type,omitempty"`
	Smooth        *int    `json:"smooth,omitempty"`
	StartDateTime *string `json:"start_datetime,omitempty"`
	EndDateTime   *string `json:"end_datetime,omitempty"`
}

// ToneChartInput is the input for the tone_chart tool.
type ToneChartInput struct {
	Query    string  `json:"query"`
	Timespan *string `json:"timespan,omitempty"`
}

// GeoSearchInput is the input for the geo_search tool.
type GeoSearchInput struct {
	Query     string  `json:"query"`
	Timespan  *string `json:"timespan,omitempty"`
	MaxPoints *int    `json:"maxpoints,omitempty"`
}

// ImageSearchInput is the input for the image_search tool.
type ImageSearchInput struct {
	Query      string  `json:"query"`
	Timespan   *string `json:"timespan,omitempty"`
	MaxRecords *int    `json:"maxrecords,omitempty"`
}

// MonitorInput is the input for the monitor tool.
type MonitorInput struct {
	Query    string  `json:"query"`
	Interval *string `json:"interval,omitempty"`
}

// SearchArticlesOutput is the structured content of search_articles.
type SearchArticlesOutput struct {
	Articles []gdelt.Article `json:"articles"`
	Count    int             `json:"count"`
}

// TimelineOutput is the structured content of timeline.
type TimelineOutput struct {
	Timeline []gdelt.TimelineEntry `json:"timeline"`
	Type     string                `json:"type"`
	Count    int                   `json:"count"`
}

// TonePercentages are one-decimal shares of the total article count.
type TonePercentages struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
}

// ToneSummary partitions the histogram by sign.
type ToneSummary struct {
	Negative    int             `json:"negative"`
	Neutral     int             `json:"neutral"`
	Positive    int             `json:"positive"`
	Total       int             `json:"total"`
	Percentages TonePercentages `json:"percentages"`
}

// ToneChartOutput is the structured content of tone_chart.
type ToneChartOutput struct {
	ToneChart []gdelt.ToneChartEntry `json:"toneChart"`
	Summary   ToneSummary            `json:"summary"`
}

// GeoSearchOutput is the structured content of geo_search.
type GeoSearchOutput struct {
	Type     string             `json:"type"`
	Features []gdelt.GeoFeature `json:"features"`
	Count    int                `json:"count"`
}

// ImageSearchOutput is the structured content of image_search.
type ImageSearchOutput struct {
	Articles []gdelt.Article   `json:"articles"`
	Images   []gdelt.ImageInfo `json:"images"`
	Count    int               `json:"count"`
}

// MonitorOutput is the structured content of monitor.
type MonitorOutput struct {
	Articles []gdelt.Article `json:"articles"`
	Count    int             `json:"count"`
	Interval string          `json:"interval"`
	Query    string          `json:"query"`
}
