package ui

import (
	"testing"

	"github.com/chris-regnier/gdeltctl/internal/config"
)

func TestResolveThemeDefaultDark(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})

	if string(theme.Primary) == "" {
		t.Error("expected primary color to be set")
	}
	if theme.MarkdownStyle != "dark" {
		t.Errorf("expected markdown_style 'dark', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeDefaultLight(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-light"})

	if theme.MarkdownStyle != "light" {
		t.Errorf("expected markdown_style 'light', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeMarkdownStyleOverride(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark", MarkdownStyle: "notty"})

	if theme.MarkdownStyle != "notty" {
		t.Errorf("expected markdown_style 'notty', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeUnknownPresetFallsBack(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "nonexistent"})

	if theme != presets["default-dark"] {
		t.Errorf("expected default-dark fallback, got %+v", theme)
	}
}

func TestResolveThemeAllPresets(t *testing.T) {
	for name := range presets {
		t.Run(name, func(t *testing.T) {
			theme := ResolveTheme(config.ThemeConfig{Preset: name})
			if theme.Negative == "" || theme.Positive == "" {
				t.Error("tone colors must be set")
			}
			if theme.MarkdownStyle == "" {
				t.Error("markdown style must be set")
			}
		})
	}
}
