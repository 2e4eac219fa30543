package mcptools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToneChartHandler returns the handler for the tone_chart tool.
func ToneChartHandler(f Fetcher) func(ctx context.Context, p ToneChartParams) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, p ToneChartParams) (*mcp.CallToolResult, error) {
		raw, err := f.FetchDocuments(ctx, gdelt.DocQuery{
			Query:    p.Query,
			Mode:     gdelt.ModeToneChart,
			Timespan: p.Timespan,
		})
		if err != nil {
			return nil, err
		}
		resp, err := gdelt.DecodeToneChart(raw)
		if err != nil {
			return nil, err
		}

		chart := resp.Entries()
		summary := SummarizeTone(chart)

		var b strings.Builder
		fmt.Fprintf(&b, "Tone distribution for \"%s\":\n\n", p.Query)
		if summary.Total == 0 {
			b.WriteString("(no tone data)\n\n")
		}
		fmt.Fprintf(&b, "Negative: %d (%.1f%%)\n", summary.Negative, summary.Percentages.Negative)
		fmt.Fprintf(&b, "Neutral: %d (%.1f%%)\n", summary.Neutral, summary.Percentages.Neutral)
		fmt.Fprintf(&b, "Positive: %d (%.1f%%)\n\n", summary.Positive, summary.Percentages.Positive)
		b.WriteString("Detailed distribution:")
		for _, e := range chart {
			fmt.Fprintf(&b, "\nTone %d: %d articles", e.Tone, e.Count)
		}

		return textResult(b.String(), ToneChartOutput{
			ToneChart: chart,
			Summary:   summary,
		}), nil
	}
}

// SummarizeTone partitions the histogram by the sign of each bucket's tone
// and sums the counts. With a zero total every percentage is 0.
func SummarizeTone(chart []gdelt.ToneChartEntry) ToneSummary {
	var s ToneSummary
	for _, e := range chart {
		switch {
		case e.Tone < 0:
			s.Negative += e.Count
		case e.Tone > 0:
			s.Positive += e.Count
		default:
			s.Neutral += e.Count
		}
	}
	s.Total = s.Negative + s.Neutral + s.Positive
	s.Percentages = TonePercentages{
		Negative: percentOf(s.Negative, s.Total),
		Neutral:  percentOf(s.Neutral, s.Total),
		Positive: percentOf(s.Positive, s.Total),
	}
	return s
}

// percentOf returns part/total*100 rounded to one decimal place.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
