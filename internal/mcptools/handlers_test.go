package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// fakeFetcher returns canned bodies and records every query it receives.
type fakeFetcher struct {
	body     string
	err      error
	docCalls []gdelt.DocQuery
	geoCalls []gdelt.GeoQuery
}

func (f *fakeFetcher) FetchDocuments(_ context.Context, q gdelt.DocQuery) (json.RawMessage, error) {
	f.docCalls = append(f.docCalls, q)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.body), nil
}

func (f *fakeFetcher) FetchGeo(_ context.Context, q gdelt.GeoQuery) (json.RawMessage, error) {
	f.geoCalls = append(f.geoCalls, q)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.body), nil
}

func (f *fakeFetcher) calls() int {
	return len(f.docCalls) + len(f.geoCalls)
}

func articlesJSON(n int, withImage func(i int) bool) string {
	arts := make([]gdelt.Article, n)
	for i := range arts {
		arts[i] = gdelt.Article{
			URL:      fmt.Sprintf("https://example.com/%d", i),
			Title:    fmt.Sprintf("Story %d", i),
			SeenDate: "20240101T000000Z",
			Domain:   "example.com",
		}
		if withImage != nil && withImage(i) {
			arts[i].SocialImage = fmt.Sprintf("https://example.com/%d.jpg", i)
		}
	}
	b, _ := json.Marshal(map[string]any{"articles": arts})
	return string(b)
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil {
		t.Fatal("nil result")
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", ResultText(res))
	}
	return ResultText(res)
}

func TestSearchArticlesHandler(t *testing.T) {
	f := &fakeFetcher{body: `{"articles":[{"url":"https://a.test/1","title":"Floods &amp; <b>storms</b>","seendate":"20240101T120000Z","domain":"a.test","language":"English","sourcecountry":"France"}]}`}
	p, err := ParseSearchArticles(json.RawMessage(`{"query":"flood"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := SearchArticlesHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	got := f.docCalls[0]
	if got.Mode != gdelt.ModeArtList || got.Timespan != "3d" || got.MaxRecords != 75 || got.Sort != "DateDesc" {
		t.Errorf("query = %+v", got)
	}
	out := res.StructuredContent.(SearchArticlesOutput)
	if out.Count != 1 || len(out.Articles) != 1 {
		t.Fatalf("output = %+v", out)
	}
	txt := text(t, res)
	if !strings.HasPrefix(txt, "Found 1 articles:\n\n1. Floods & storms\n") {
		t.Errorf("text = %q", txt)
	}
	for _, want := range []string{"URL: https://a.test/1", "Domain: a.test", "Language: English", "Country: France", "Date: 20240101T120000Z"} {
		if !strings.Contains(txt, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestSearchArticlesAbsoluteWindowDropsTimespan(t *testing.T) {
	f := &fakeFetcher{body: `{}`}
	p, err := ParseSearchArticles(json.RawMessage(`{"query":"x","timespan":"1w","start_datetime":"20240101","end_datetime":"20240102"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := SearchArticlesHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	q := f.docCalls[0]
	if q.Timespan != "" {
		t.Errorf("timespan = %q, want empty", q.Timespan)
	}
	if q.StartDateTime != "20240101000000" || q.EndDateTime != "20240102000000" {
		t.Errorf("bounds = %q..%q", q.StartDateTime, q.EndDateTime)
	}
	if got := text(t, res); got != "Found 0 articles:" {
		t.Errorf("text = %q", got)
	}
	if out := res.StructuredContent.(SearchArticlesOutput); out.Articles == nil || out.Count != 0 {
		t.Errorf("output = %+v", out)
	}
}

func TestTimelineHandler(t *testing.T) {
	f := &fakeFetcher{body: `{"query_details":{},"timeline":[{"series":"Volume Intensity","data":[{"date":"20240101T000000Z","value":0.5},{"date":"20240102T000000Z","value":1.25}]},{"series":"other","data":[{"date":"x","value":9}]}]}`}
	p, err := ParseTimeline(json.RawMessage(`{"query":"election","timeline_type":"tone","smooth":5}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := TimelineHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	q := f.docCalls[0]
	if q.Mode != gdelt.ModeTimelineTone || q.TimelineSmooth != 5 || q.Timespan != "1w" {
		t.Errorf("query = %+v", q)
	}
	out := res.StructuredContent.(TimelineOutput)
	if out.Type != "tone" || out.Count != 2 || out.Timeline[1].Value != 1.25 {
		t.Errorf("output = %+v", out)
	}
	want := "Timeline analysis (tone):\n\n20240101T000000Z: 0.5\n20240102T000000Z: 1.25"
	if got := text(t, res); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestTimelineHandlerEmpty(t *testing.T) {
	f := &fakeFetcher{body: `{}`}
	p, _ := ParseTimeline(json.RawMessage(`{"query":"x"}`))
	res, err := TimelineHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	out := res.StructuredContent.(TimelineOutput)
	if out.Timeline == nil || out.Count != 0 || out.Type != "volume" {
		t.Errorf("output = %+v", out)
	}
	if f.docCalls[0].Mode != gdelt.ModeTimelineVol {
		t.Errorf("mode = %s", f.docCalls[0].Mode)
	}
}

func TestToneChartHandler(t *testing.T) {
	f := &fakeFetcher{body: `{"tonechart":[{"bin":-3,"count":10},{"bin":0,"count":5},{"bin":2,"count":5}]}`}
	p, _ := ParseToneChart(json.RawMessage(`{"query":"climate"}`))
	res, err := ToneChartHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	out := res.StructuredContent.(ToneChartOutput)
	if len(out.ToneChart) != 3 || out.ToneChart[0].Tone != -3 || out.ToneChart[0].Count != 10 {
		t.Errorf("chart = %+v", out.ToneChart)
	}
	s := out.Summary
	if s.Negative != 10 || s.Neutral != 5 || s.Positive != 5 || s.Total != 20 {
		t.Errorf("summary = %+v", s)
	}
	if s.Percentages != (TonePercentages{Negative: 50, Neutral: 25, Positive: 25}) {
		t.Errorf("percentages = %+v", s.Percentages)
	}

	txt := text(t, res)
	for _, want := range []string{
		`Tone distribution for "climate":`,
		"Negative: 10 (50.0%)",
		"Neutral: 5 (25.0%)",
		"Positive: 5 (25.0%)",
		"Detailed distribution:",
		"Tone -3: 10 articles",
		"Tone 2: 5 articles",
	} {
		if !strings.Contains(txt, want) {
			t.Errorf("text missing %q:\n%s", want, txt)
		}
	}
	if strings.Contains(txt, "no tone data") {
		t.Error("non-empty chart flagged as no data")
	}
}

func TestHeadersKeepPhraseQuotes(t *testing.T) {
	raw := json.RawMessage(`{"query":"\"climate change\""}`)

	tp, _ := ParseToneChart(raw)
	res, err := ToneChartHandler(&fakeFetcher{body: `{"tonechart":[]}`})(context.Background(), tp)
	if err != nil {
		t.Fatalf("tone_chart: %v", err)
	}
	if txt := text(t, res); !strings.HasPrefix(txt, `Tone distribution for ""climate change"":`) {
		t.Errorf("tone_chart text = %q", txt)
	}

	mp, _ := ParseMonitor(raw)
	res, err = MonitorHandler(&fakeFetcher{body: `{"articles":[]}`})(context.Background(), mp)
	if err != nil {
		t.Fatalf("monitor: %v", err)
	}
	if txt := text(t, res); !strings.HasPrefix(txt, `Monitoring ""climate change"" (last 15min):`) {
		t.Errorf("monitor text = %q", txt)
	}
}

func TestToneChartHandlerZeroTotal(t *testing.T) {
	f := &fakeFetcher{body: `{"tonechart":[]}`}
	p, _ := ParseToneChart(json.RawMessage(`{"query":"nothing"}`))
	res, err := ToneChartHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	out := res.StructuredContent.(ToneChartOutput)
	if out.Summary.Total != 0 || out.Summary.Percentages != (TonePercentages{}) {
		t.Errorf("summary = %+v", out.Summary)
	}
	txt := text(t, res)
	if !strings.Contains(txt, "(no tone data)") || !strings.Contains(txt, "Negative: 0 (0.0%)") {
		t.Errorf("text = %q", txt)
	}
}

func TestToneChartHandlerMissingChart(t *testing.T) {
	f := &fakeFetcher{body: `{"articles":[]}`}
	p, _ := ParseToneChart(json.RawMessage(`{"query":"x"}`))
	_, err := ToneChartHandler(f)(context.Background(), p)
	var decodeErr *gdelt.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
}

func TestSummarizeToneRounding(t *testing.T) {
	s := SummarizeTone([]gdelt.ToneChartEntry{{Tone: -1, Count: 1}, {Tone: 0, Count: 1}, {Tone: 1, Count: 1}})
	if s.Percentages.Negative != 33.3 || s.Percentages.Positive != 33.3 {
		t.Errorf("percentages = %+v", s.Percentages)
	}
}

func TestGeoSearchHandlerTruncatesText(t *testing.T) {
	features := make([]gdelt.GeoFeature, 25)
	for i := range features {
		features[i] = gdelt.GeoFeature{
			Type:       "Feature",
			Geometry:   gdelt.GeoGeometry{Type: "Point", Coordinates: []float64{2.35, 48.85}},
			Properties: gdelt.GeoProperties{Name: fmt.Sprintf("Place %d", i), Count: i + 1},
		}
	}
	body, _ := json.Marshal(map[string]any{"type": "FeatureCollection", "features": features})
	f := &fakeFetcher{body: string(body)}
	p, _ := ParseGeoSearch(json.RawMessage(`{"query":"protest","maxpoints":500}`))

	res, err := GeoSearchHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	q := f.geoCalls[0]
	if q.Mode != gdelt.ModePointData || q.MaxPoints != 500 || q.Timespan != "1d" {
		t.Errorf("query = %+v", q)
	}
	if len(f.docCalls) != 0 {
		t.Error("geo_search hit the DOC endpoint")
	}

	out := res.StructuredContent.(GeoSearchOutput)
	if out.Type != "FeatureCollection" || out.Count != 25 || len(out.Features) != 25 {
		t.Errorf("output type=%q count=%d", out.Type, out.Count)
	}
	txt := text(t, res)
	if !strings.HasPrefix(txt, "Found 25 geographic locations:") {
		t.Errorf("text = %q", txt)
	}
	if !strings.Contains(txt, "20. Place 19 (20 mentions)\n   Coordinates: [48.85, 2.35]") {
		t.Errorf("missing 20th location:\n%s", txt)
	}
	if strings.Contains(txt, "21. ") {
		t.Error("text lists more than 20 locations")
	}
	if !strings.HasSuffix(txt, moreNote) {
		t.Error("missing truncation note")
	}
}

func TestGeoSearchHandlerNoNoteWhenShort(t *testing.T) {
	f := &fakeFetcher{body: `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"A","count":3}}]}`}
	p, _ := ParseGeoSearch(json.RawMessage(`{"query":"x"}`))
	res, err := GeoSearchHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if strings.Contains(text(t, res), "and more") {
		t.Error("unexpected truncation note")
	}
}

func TestImageSearchHandlerFiltersAndKeepsOrder(t *testing.T) {
	f := &fakeFetcher{body: articlesJSON(5, func(i int) bool { return i == 1 || i == 3 })}
	p, _ := ParseImageSearch(json.RawMessage(`{"query":"wildfire"}`))

	res, err := ImageSearchHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if q := f.docCalls[0]; q.Mode != gdelt.ModeArtList || q.MaxRecords != 75 {
		t.Errorf("query = %+v", q)
	}

	out := res.StructuredContent.(ImageSearchOutput)
	if out.Count != 2 || len(out.Articles) != 2 || len(out.Images) != 2 {
		t.Fatalf("output = %+v", out)
	}
	if out.Articles[0].Title != "Story 1" || out.Articles[1].Title != "Story 3" {
		t.Errorf("order = %q, %q", out.Articles[0].Title, out.Articles[1].Title)
	}
	for i, img := range out.Images {
		if img.URL != out.Articles[i].SocialImage {
			t.Errorf("image %d = %q, want %q", i, img.URL, out.Articles[i].SocialImage)
		}
	}
	txt := text(t, res)
	if !strings.HasPrefix(txt, "Found 2 articles with images:") || !strings.Contains(txt, "Image: https://example.com/3.jpg") {
		t.Errorf("text = %q", txt)
	}
}

func TestMonitorHandler(t *testing.T) {
	f := &fakeFetcher{body: articlesJSON(12, nil)}
	p, _ := ParseMonitor(json.RawMessage(`{"query":"earthquake","interval":"1h"}`))

	res, err := MonitorHandler(f)(context.Background(), p)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	q := f.docCalls[0]
	if q.Timespan != "1h" || q.MaxRecords != 250 || q.Sort != "DateDesc" || q.Mode != gdelt.ModeArtList {
		t.Errorf("query = %+v", q)
	}

	out := res.StructuredContent.(MonitorOutput)
	if out.Count != 12 || out.Interval != "1h" || out.Query != "earthquake" {
		t.Errorf("output = %+v", out)
	}
	txt := text(t, res)
	if !strings.HasPrefix(txt, "Monitoring \"earthquake\" (last 1h):\n\nFound 12 recent articles:") {
		t.Errorf("text = %q", txt)
	}
	if !strings.Contains(txt, "10. Story 9") || strings.Contains(txt, "11. ") {
		t.Errorf("text should list exactly 10 articles:\n%s", txt)
	}
	if !strings.HasSuffix(txt, moreNote) {
		t.Error("missing truncation note")
	}
}

func TestHandlersPropagateFetchErrors(t *testing.T) {
	apiErr := &gdelt.RemoteAPIError{Endpoint: gdelt.EndpointDoc, StatusCode: 429, Status: "429 Too Many Requests"}
	f := &fakeFetcher{err: apiErr}
	p, _ := ParseSearchArticles(json.RawMessage(`{"query":"x"}`))
	_, err := SearchArticlesHandler(f)(context.Background(), p)
	if err != apiErr {
		t.Errorf("err = %v, want %v", err, apiErr)
	}
}
