package gdelt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Each remote mode produces a different, mutually exclusive document shape.
// The decoders below accept exactly one variant each and fail closed when a
// field that should be an array is something else.

// ArticleList is the ArtList variant.
type ArticleList struct {
	Articles []Article
}

// TimelineResponse is the Timeline* variant.
type TimelineResponse struct {
	Series []TimelineSeries
}

// First returns the data of the first series, or an empty slice.
func (r TimelineResponse) First() []TimelineEntry {
	if len(r.Series) == 0 || r.Series[0].Data == nil {
		return []TimelineEntry{}
	}
	return r.Series[0].Data
}

// ToneChartResponse is the ToneChart variant.
type ToneChartResponse struct {
	Bins []ToneBin
}

// Entries renames each bin's "bin" key to "tone".
func (r ToneChartResponse) Entries() []ToneChartEntry {
	entries := make([]ToneChartEntry, len(r.Bins))
	for i, b := range r.Bins {
		entries[i] = ToneChartEntry{Tone: b.Bin, Count: b.Count}
	}
	return entries
}

// GeoResponse is the PointData GeoJSON variant.
type GeoResponse struct {
	Type     string
	Features []GeoFeature
}

// DecodeArticleList decodes an ArtList response. A missing articles key
// (the API's answer to a query with no matches) yields an empty list.
func DecodeArticleList(raw json.RawMessage) (ArticleList, error) {
	var env struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ArticleList{}, &DecodeError{Mode: ModeArtList, Err: err}
	}
	articles := []Article{}
	if _, err := decodeArray(env.Articles, "articles", &articles); err != nil {
		return ArticleList{}, &DecodeError{Mode: ModeArtList, Err: err}
	}
	return ArticleList{Articles: articles}, nil
}

// DecodeTimeline decodes any Timeline* response. Each series' data must be
// an array when present.
func DecodeTimeline(mode Mode, raw json.RawMessage) (TimelineResponse, error) {
	var env struct {
		Timeline json.RawMessage `json:"timeline"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return TimelineResponse{}, &DecodeError{Mode: mode, Err: err}
	}

	var rawSeries []struct {
		Series string          `json:"series"`
		Data   json.RawMessage `json:"data"`
	}
	if _, err := decodeArray(env.Timeline, "timeline", &rawSeries); err != nil {
		return TimelineResponse{}, &DecodeError{Mode: mode, Err: err}
	}

	series := make([]TimelineSeries, 0, len(rawSeries))
	for i, s := range rawSeries {
		data := []TimelineEntry{}
		if _, err := decodeArray(s.Data, fmt.Sprintf("timeline[%d].data", i), &data); err != nil {
			return TimelineResponse{}, &DecodeError{Mode: mode, Err: err}
		}
		series = append(series, TimelineSeries{Series: s.Series, Data: data})
	}
	return TimelineResponse{Series: series}, nil
}

// DecodeToneChart decodes a ToneChart response. Unlike the other variants a
// missing tonechart array is an error: an absent histogram must not be
// reported as an empty one.
func DecodeToneChart(raw json.RawMessage) (ToneChartResponse, error) {
	var env struct {
		ToneChart json.RawMessage `json:"tonechart"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ToneChartResponse{}, &DecodeError{Mode: ModeToneChart, Err: err}
	}
	bins := []ToneBin{}
	present, err := decodeArray(env.ToneChart, "tonechart", &bins)
	if err != nil {
		return ToneChartResponse{}, &DecodeError{Mode: ModeToneChart, Err: err}
	}
	if !present {
		return ToneChartResponse{}, &DecodeError{Mode: ModeToneChart, Err: errors.New("response has no tonechart array")}
	}
	return ToneChartResponse{Bins: bins}, nil
}

// DecodeGeo decodes a PointData GeoJSON FeatureCollection.
func DecodeGeo(raw json.RawMessage) (GeoResponse, error) {
	var env struct {
		Type     string          `json:"type"`
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return GeoResponse{}, &DecodeError{Mode: ModePointData, Err: err}
	}
	features := []GeoFeature{}
	if _, err := decodeArray(env.Features, "features", &features); err != nil {
		return GeoResponse{}, &DecodeError{Mode: ModePointData, Err: err}
	}
	return GeoResponse{Type: env.Type, Features: features}, nil
}

// decodeArray unmarshals raw into v when raw is a JSON array. It reports
// false without error when raw is absent or null.
func decodeArray(raw json.RawMessage, field string, v any) (bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if raw[0] != '[' {
		return false, fmt.Errorf("%s: expected array", field)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%s: %w", field, err)
	}
	return true, nil
}
