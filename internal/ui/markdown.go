package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/chris-regnier/gdeltctl/internal/gdelt"
)

const defaultWidth = 80

type rendererKey struct {
	width int
	style string
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

// renderer returns a cached glamour renderer for width and style.
func renderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultWidth
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width: width, style: style}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// RenderMarkdown renders markdown with the given glamour style. Returns the
// original content if rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// ArticleTable renders articles as a markdown table with linked titles.
func ArticleTable(articles []gdelt.Article) string {
	if len(articles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| # | Title | Domain | Seen |\n|---|---|---|---|\n")
	for i, a := range articles {
		title := tableCell(a.Title)
		if title == "" {
			title = a.URL
		}
		fmt.Fprintf(&b, "| %d | [%s](%s) | %s | %s |\n",
			i+1, title, a.URL, tableCell(a.Domain), FormatSeenDate(a.SeenDate))
	}
	return b.String()
}

// tableCell keeps a value on one line and escapes the column separator.
func tableCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// FormatSeenDate turns the API's 20240102T150405Z form into
// "2024-01-02 15:04". Other values are returned unchanged.
func FormatSeenDate(s string) string {
	if len(s) != 16 || s[8] != 'T' || s[15] != 'Z' {
		return s
	}
	return fmt.Sprintf("%s-%s-%s %s:%s", s[0:4], s[4:6], s[6:8], s[9:11], s[11:13])
}
