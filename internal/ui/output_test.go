package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/gdeltctl/internal/config"
	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func result(text string, structured any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: structured,
	}
}

func TestRenderResultPlain(t *testing.T) {
	res := result("Found 0 articles:", mcptools.SearchArticlesOutput{Articles: []gdelt.Article{}})

	got, err := RenderResult(res, View{})
	if err != nil {
		t.Fatalf("RenderResult: %v", err)
	}
	if got != "Found 0 articles:\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderResultJSON(t *testing.T) {
	res := result("ignored", mcptools.MonitorOutput{
		Articles: []gdelt.Article{{URL: "https://a.test"}},
		Count:    1,
		Interval: "15min",
		Query:    "q",
	})

	got, err := RenderResult(res, View{JSON: true})
	if err != nil {
		t.Fatalf("RenderResult: %v", err)
	}
	var back mcptools.MonitorOutput
	if err := json.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}
	if back.Count != 1 || back.Interval != "15min" {
		t.Errorf("decoded = %+v", back)
	}
	if !strings.Contains(got, "\n  \"articles\"") {
		t.Errorf("expected indented output, got %s", got)
	}
}

func TestRenderResultStyledArticles(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{MarkdownStyle: "notty"})
	res := result("Found 1 articles:\n\n1. Harbor reopens", mcptools.SearchArticlesOutput{
		Articles: []gdelt.Article{{URL: "https://a.test/1", Title: "Harbor reopens", Domain: "a.test"}},
		Count:    1,
	})

	got, err := RenderResult(res, View{Styled: true, Width: 100, Theme: theme})
	if err != nil {
		t.Fatalf("RenderResult: %v", err)
	}
	plain := stripANSI(got)
	if !strings.HasPrefix(plain, "Found 1 articles:") || !strings.Contains(plain, "Harbor") {
		t.Errorf("output:\n%s", plain)
	}
}

func TestRenderResultStyledFallsBackToText(t *testing.T) {
	res := result("Timeline analysis (volume):", mcptools.TimelineOutput{})
	got, err := RenderResult(res, View{Styled: true, Theme: ResolveTheme(config.ThemeConfig{})})
	if err != nil {
		t.Fatalf("RenderResult: %v", err)
	}
	if got != "Timeline analysis (volume):\n" {
		t.Errorf("got %q", got)
	}
}

func TestToneBars(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})
	s := mcptools.SummarizeTone([]gdelt.ToneChartEntry{{Tone: -2, Count: 10}, {Tone: 0, Count: 5}, {Tone: 3, Count: 5}})

	out := stripANSI(ToneBars(s, theme, 50))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bars, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Negative") || !strings.Contains(lines[0], " 50.0% (10)") {
		t.Errorf("negative bar = %q", lines[0])
	}
	// bar width is 20 at width 50, so 50% is 10 cells
	if got := strings.Count(lines[0], "█"); got != 10 {
		t.Errorf("negative bar has %d cells, want 10", got)
	}
	if got := strings.Count(lines[2], "█"); got != 5 {
		t.Errorf("positive bar has %d cells, want 5", got)
	}
}

func TestToneBarsNoData(t *testing.T) {
	out := stripANSI(ToneBars(mcptools.ToneSummary{}, ResolveTheme(config.ThemeConfig{}), 80))
	if out != "(no tone data)" {
		t.Errorf("got %q", out)
	}
}

func TestFormatToolList(t *testing.T) {
	var buf bytes.Buffer
	FormatToolList(&buf, []*mcp.Tool{{Name: "monitor", Description: "Watch coverage"}})
	if got := buf.String(); got != "monitor          Watch coverage\n" {
		t.Errorf("got %q", got)
	}
}
