package mcptools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
)

// Field limits and enumerations shared by the tool schemas.
const (
	minRecords = 1
	maxRecords = 250
	minPoints  = 1
	maxPoints  = 1000
	minSmooth  = 1
	maxSmooth  = 30

	monitorMaxRecords = 250
)

var (
	sortOrders    = []string{"DateDesc", "DateAsc", "ToneDesc", "ToneAsc", "HybridRel"}
	timelineTypes = []string{"volume", "tone", "language", "sourcecountry"}
	intervals     = []string{"15min", "1h", "3h"}
)

var timelineModes = map[string]gdelt.Mode{
	"volume":        gdelt.ModeTimelineVol,
	"tone":          gdelt.ModeTimelineTone,
	"language":      gdelt.ModeTimelineLang,
	"sourcecountry": gdelt.ModeTimelineSourceCountry,
}

// ValidationError reports an argument that violates its tool schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validated parameter sets. Every field holds its final value.

// SearchArticlesParams are validated search_articles arguments.
type SearchArticlesParams struct {
	Query         string
	Timespan      string
	MaxRecords    int
	Sort          string
	StartDateTime string
	EndDateTime   string
}

// TimelineParams are validated timeline arguments.
type TimelineParams struct {
	Query         string
	Timespan      string
	TimelineType  string
	Smooth        int
	StartDateTime string
	EndDateTime   string
}

// ToneChartParams are validated tone_chart arguments.
type ToneChartParams struct {
	Query    string
	Timespan string
}

// GeoSearchParams are validated geo_search arguments.
type GeoSearchParams struct {
	Query     string
	Timespan  string
	MaxPoints int
}

// ImageSearchParams are validated image_search arguments.
type ImageSearchParams struct {
	Query      string
	Timespan   string
	MaxRecords int
}

// MonitorParams are validated monitor arguments.
type MonitorParams struct {
	Query    string
	Interval string
}

// ParseSearchArticles validates raw search_articles arguments.
func ParseSearchArticles(raw json.RawMessage) (SearchArticlesParams, error) {
	var in SearchArticlesInput
	if err := decodeArgs(raw, &in); err != nil {
		return SearchArticlesParams{}, err
	}
	var p SearchArticlesParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Timespan, err = timespanOr(in.Timespan, "3d"); err != nil {
		return p, err
	}
	if p.MaxRecords, err = intInRange("maxrecords", in.MaxRecords, 75, minRecords, maxRecords); err != nil {
		return p, err
	}
	if p.Sort, err = enumOr("sort", in.Sort, "DateDesc", sortOrders); err != nil {
		return p, err
	}
	if p.StartDateTime, p.EndDateTime, err = dateBounds(in.StartDateTime, in.EndDateTime); err != nil {
		return p, err
	}
	return p, nil
}

// ParseTimeline validates raw timeline arguments.
func ParseTimeline(raw json.RawMessage) (TimelineParams, error) {
	var in TimelineInput
	if err := decodeArgs(raw, &in); err != nil {
		return TimelineParams{}, err
	}
	var p TimelineParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Timespan, err = timespanOr(in.Timespan, "1w"); err != nil {
		return p, err
	}
	if p.TimelineType, err = enumOr("timeline_type", in.TimelineType, "volume", timelineTypes); err != nil {
		return p, err
	}
	if in.Smooth != nil {
		if p.Smooth, err = intInRange("smooth", in.Smooth, 0, minSmooth, maxSmooth); err != nil {
			return p, err
		}
	}
	if p.StartDateTime, p.EndDateTime, err = dateBounds(in.StartDateTime, in.EndDateTime); err != nil {
		return p, err
	}
	return p, nil
}

// ParseToneChart validates raw tone_chart arguments.
func ParseToneChart(raw json.RawMessage) (ToneChartParams, error) {
	var in ToneChartInput
	if err := decodeArgs(raw, &in); err != nil {
		return ToneChartParams{}, err
	}
	var p ToneChartParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Timespan, err = timespanOr(in.Timespan, "3d"); err != nil {
		return p, err
	}
	return p, nil
}

// ParseGeoSearch validates raw geo_search arguments.
func ParseGeoSearch(raw json.RawMessage) (GeoSearchParams, error) {
	var in GeoSearchInput
	if err := decodeArgs(raw, &in); err != nil {
		return GeoSearchParams{}, err
	}
	var p GeoSearchParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Timespan, err = timespanOr(in.Timespan, "1d"); err != nil {
		return p, err
	}
	if p.MaxPoints, err = intInRange("maxpoints", in.MaxPoints, 100, minPoints, maxPoints); err != nil {
		return p, err
	}
	return p, nil
}

// ParseImageSearch validates raw image_search arguments.
func ParseImageSearch(raw json.RawMessage) (ImageSearchParams, error) {
	var in ImageSearchInput
	if err := decodeArgs(raw, &in); err != nil {
		return ImageSearchParams{}, err
	}
	var p ImageSearchParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Timespan, err = timespanOr(in.Timespan, "3d"); err != nil {
		return p, err
	}
	if p.MaxRecords, err = intInRange("maxrecords", in.MaxRecords, 75, minRecords, maxRecords); err != nil {
		return p, err
	}
	return p, nil
}

// ParseMonitor validates raw monitor arguments.
func ParseMonitor(raw json.RawMessage) (MonitorParams, error) {
	var in MonitorInput
	if err := decodeArgs(raw, &in); err != nil {
		return MonitorParams{}, err
	}
	var p MonitorParams
	var err error
	if p.Query, err = requireQuery(in.Query); err != nil {
		return p, err
	}
	if p.Interval, err = enumOr("interval", in.Interval, "15min", intervals); err != nil {
		return p, err
	}
	return p, nil
}

// decodeArgs unmarshals tool arguments. An empty or null payload is an empty
// object; unknown keys are ignored.
func decodeArgs(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return &ValidationError{Field: "arguments", Reason: err.Error()}
	}
	return nil
}

func requireQuery(q string) (string, error) {
	if strings.TrimSpace(q) == "" {
		return "", &ValidationError{Field: "query", Reason: "query cannot be empty"}
	}
	return q, nil
}

func timespanOr(v *string, def string) (string, error) {
	if v == nil {
		return def, nil
	}
	if !gdelt.ValidTimespan(*v) {
		return "", &ValidationError{
			Field:  "timespan",
			Reason: fmt.Sprintf("%q does not match <n>(min|h|d|w|m)", *v),
		}
	}
	return *v, nil
}

func intInRange(field string, v *int, def, min, max int) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v < min || *v > max {
		return 0, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%d is outside [%d, %d]", *v, min, max),
		}
	}
	return *v, nil
}

func enumOr(field string, v *string, def string, allowed []string) (string, error) {
	if v == nil {
		return def, nil
	}
	if !slices.Contains(allowed, *v) {
		return "", &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not one of %s", *v, strings.Join(allowed, ", ")),
		}
	}
	return *v, nil
}

// dateBounds checks optional absolute compact timestamps.
func dateBounds(start, end *string) (string, string, error) {
	var s, e string
	if start != nil {
		t, err := gdelt.ParseCompact(*start)
		if err != nil {
			return "", "", &ValidationError{Field: "start_datetime", Reason: err.Error()}
		}
		s = gdelt.FormatCompact(t)
	}
	if end != nil {
		t, err := gdelt.ParseCompact(*end)
		if err != nil {
			return "", "", &ValidationError{Field: "end_datetime", Reason: err.Error()}
		}
		e = gdelt.FormatCompact(t)
	}
	if s != "" && e != "" && s > e {
		return "", "", &ValidationError{Field: "start_datetime", Reason: "must not be after end_datetime"}
	}
	return s, e, nil
}
