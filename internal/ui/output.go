package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// View controls how a tool result is written.
type View struct {
	JSON   bool  // structured content as indented JSON
	Styled bool  // lipgloss and glamour rendering, for terminals
	Width  int   // wrap width for styled output
	Theme  Theme // colors for styled output
}

// RenderResult returns the printable form of a successful tool result.
func RenderResult(res *mcp.CallToolResult, v View) (string, error) {
	if v.JSON {
		var b strings.Builder
		if err := FormatJSON(&b, res.StructuredContent); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	text := mcptools.ResultText(res)
	if !v.Styled {
		return text + "\n", nil
	}

	header, _, _ := strings.Cut(text, "\n")
	switch out := res.StructuredContent.(type) {
	case mcptools.SearchArticlesOutput:
		return styledArticles(header, out.Articles, v), nil
	case mcptools.MonitorOutput:
		return styledArticles(header, out.Articles, v), nil
	case mcptools.ImageSearchOutput:
		return styledArticles(header, out.Articles, v), nil
	case mcptools.ToneChartOutput:
		var b strings.Builder
		b.WriteString(v.Theme.HeaderStyle().Render(header))
		b.WriteString("\n\n")
		b.WriteString(ToneBars(out.Summary, v.Theme, v.Width))
		b.WriteString("\n")
		return b.String(), nil
	}
	return text + "\n", nil
}

func styledArticles(header string, articles []gdelt.Article, v View) string {
	var b strings.Builder
	b.WriteString(v.Theme.HeaderStyle().Render(header))
	b.WriteString("\n")
	if table := ArticleTable(articles); table != "" {
		b.WriteString(RenderMarkdown(table, v.Width, v.Theme.MarkdownStyle))
		b.WriteString("\n")
	}
	return b.String()
}

// ToneBars draws one horizontal bar per tone partition, scaled to width.
func ToneBars(s mcptools.ToneSummary, theme Theme, width int) string {
	if s.Total == 0 {
		return theme.HelpStyle().Render("(no tone data)")
	}
	if width < 1 {
		width = defaultWidth
	}
	barWidth := max(width-30, 10)

	rows := []struct {
		label string
		count int
		pct   float64
		color lipgloss.Color
	}{
		{"Negative", s.Negative, s.Percentages.Negative, theme.Negative},
		{"Neutral", s.Neutral, s.Percentages.Neutral, theme.Muted},
		{"Positive", s.Positive, s.Percentages.Positive, theme.Positive},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		n := int(float64(barWidth) * r.pct / 100)
		bar := lipgloss.NewStyle().Foreground(r.color).Render(strings.Repeat("█", n))
		lines[i] = fmt.Sprintf("%-8s %s %5.1f%% (%d)", r.label, bar, r.pct, r.count)
	}
	return strings.Join(lines, "\n")
}

// FormatToolList writes one line per tool definition.
func FormatToolList(w io.Writer, tools []*mcp.Tool) {
	for _, t := range tools {
		fmt.Fprintf(w, "%-16s %s\n", t.Name, t.Description)
	}
}
