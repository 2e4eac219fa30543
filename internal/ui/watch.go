package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FetchFunc runs one monitor call.
type FetchFunc func(ctx context.Context) *mcp.CallToolResult

type resultMsg struct {
	res *mcp.CallToolResult
	at  time.Time
}

// tickMsg schedules the refresh following a given run; ticks from earlier
// runs are dropped so a manual refresh does not start a second timer chain.
type tickMsg struct{ run int }

// watchModel re-runs a fetch every interval and shows the latest result.
type watchModel struct {
	ctx     context.Context
	fetch   FetchFunc
	every   time.Duration
	title   string
	view    View
	spinner spinner.Model
	loading bool
	body    string
	failed  bool
	updated time.Time
	runs    int
	first   *mcp.CallToolResult
	now     func() time.Time
}

func newWatchModel(ctx context.Context, title string, every time.Duration, first *mcp.CallToolResult, fetch FetchFunc, v View) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = v.Theme.AccentStyle()
	return watchModel{
		ctx:     ctx,
		fetch:   fetch,
		every:   every,
		title:   title,
		view:    v,
		spinner: s,
		loading: true,
		first:   first,
		now:     time.Now,
	}
}

// Init shows the first result when one was supplied, otherwise fetches.
func (m watchModel) Init() tea.Cmd {
	if m.first != nil {
		first, at := m.first, m.now()
		return func() tea.Msg { return resultMsg{res: first, at: at} }
	}
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m watchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		return resultMsg{res: m.fetch(m.ctx), at: m.now()}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
			}
		}
	case resultMsg:
		m.loading = false
		m.runs++
		m.updated = msg.at
		m.failed = msg.res.IsError
		if m.failed {
			m.body = mcptools.ResultText(msg.res)
		} else if body, err := RenderResult(msg.res, m.view); err == nil {
			m.body = body
		} else {
			m.body = err.Error()
		}
		run := m.runs
		return m, tea.Tick(m.every, func(time.Time) tea.Msg { return tickMsg{run: run} })
	case tickMsg:
		if m.loading || msg.run != m.runs {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	t := m.view.Theme
	status := "waiting"
	if m.loading {
		status = m.spinner.View() + " fetching"
	} else if !m.updated.IsZero() {
		status = fmt.Sprintf("updated %s, refresh every %s", m.updated.Format("15:04:05"), m.every)
	}

	body := m.body
	if m.failed {
		body = t.ErrorStyle().Render(body)
	}
	header := t.HeaderStyle().Render(m.title) + "  " + t.HelpStyle().Render(status)
	footer := t.HelpStyle().Render("r refresh • q quit")
	return header + "\n\n" + body + "\n" + footer + "\n"
}

// Watch shows first (fetching it when nil) and then runs fetch every
// interval until the user quits or ctx ends.
func Watch(ctx context.Context, w io.Writer, title string, every time.Duration, first *mcp.CallToolResult, fetch FetchFunc, v View) error {
	p := tea.NewProgram(newWatchModel(ctx, title, every, first, fetch, v),
		tea.WithContext(ctx), tea.WithOutput(w), tea.WithAltScreen())
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
