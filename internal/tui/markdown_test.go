package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"frameflow-cli/internal/model"
)

func TestMarkdownStyle_FollowsThemeMode(t *testing.T) {
	t.Setenv("FRAMEFLOW_TUI_MD_STYLE", "")
	t.Cleanup(func() { applyTheme(model.DefaultTheme()) })

	applyTheme(model.ThemeSettings{Mode: model.ThemeLight, Palette: model.PaletteForest, Darkness: model.DarknessDim})
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	applyTheme(model.ThemeSettings{Mode: model.ThemeDark, Palette: model.PaletteForest, Darkness: model.DarknessDim})
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("FRAMEFLOW_TUI_MD_STYLE", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected override to win; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesPaletteAccentForStrong(t *testing.T) {
	t.Cleanup(func() { applyTheme(model.DefaultTheme()) })
	applyTheme(model.ThemeSettings{Mode: model.ThemeDark, Palette: model.PaletteCrimson, Darkness: model.DarknessDim})

	cfg := markdownStyleConfig("dark")
	if cfg.Strong.Color == nil || *cfg.Strong.Color != "#f472b6" {
		t.Fatalf("expected crimson dark accent for strong text; got %v", cfg.Strong.Color)
	}
	cfg = markdownStyleConfig("light")
	if cfg.Strong.Color == nil || *cfg.Strong.Color != "#be123c" {
		t.Fatalf("expected crimson light accent for strong text; got %v", cfg.Strong.Color)
	}
}

func TestRenderMarkdown_KeepsText(t *testing.T) {
	out := xansi.Strip(renderMarkdown("**HOOK:** Ever wondered?", 60))
	if !strings.Contains(out, "Ever wondered?") {
		t.Fatalf("expected rendered text to keep content; got %q", out)
	}
	if renderMarkdown("   ", 60) != "" {
		t.Fatalf("expected empty input to render empty")
	}
}
