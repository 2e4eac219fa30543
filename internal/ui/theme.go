package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/gdeltctl/internal/config"
)

// Theme holds resolved lipgloss colors for terminal rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Negative      lipgloss.Color
	Positive      lipgloss.Color
	MarkdownStyle string
}

// Built-in presets.
var presets = map[string]Theme{
	"default-dark": {
		Primary:       lipgloss.Color("15"),
		Secondary:     lipgloss.Color("243"),
		Accent:        lipgloss.Color("33"),
		Muted:         lipgloss.Color("241"),
		Negative:      lipgloss.Color("9"),
		Positive:      lipgloss.Color("10"),
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary:       lipgloss.Color("0"),
		Secondary:     lipgloss.Color("240"),
		Accent:        lipgloss.Color("27"),
		Muted:         lipgloss.Color("245"),
		Negative:      lipgloss.Color("1"),
		Positive:      lipgloss.Color("2"),
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary:       lipgloss.Color("#F8F8F2"),
		Secondary:     lipgloss.Color("#6272A4"),
		Accent:        lipgloss.Color("#BD93F9"),
		Muted:         lipgloss.Color("#6272A4"),
		Negative:      lipgloss.Color("#FF5555"),
		Positive:      lipgloss.Color("#50FA7B"),
		MarkdownStyle: "dracula",
	},
	"gruvbox-dark": {
		Primary:       lipgloss.Color("#EBDBB2"),
		Secondary:     lipgloss.Color("#665C54"),
		Accent:        lipgloss.Color("#FABD2F"),
		Muted:         lipgloss.Color("#928374"),
		Negative:      lipgloss.Color("#FB4934"),
		Positive:      lipgloss.Color("#B8BB26"),
		MarkdownStyle: "dark",
	},
}

// ResolveTheme builds a Theme from config, starting with a preset and
// applying the markdown style override.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets["default-dark"]
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// HeaderStyle returns a lipgloss style for headers.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

// HelpStyle returns a lipgloss style for help/footer text.
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// AccentStyle returns a lipgloss style for accented elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

// ErrorStyle returns a lipgloss style for error text.
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Negative)
}

// BorderStyle returns a lipgloss style with a rounded border using secondary color.
func (t Theme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1)
}
