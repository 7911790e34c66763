package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

type settingsRow int

const (
	settingMode settingsRow = iota
	settingPalette
	settingDarkness
	settingGlyphs
	settingTutorial
	settingsRowCount
)

type settingsState struct {
	cursor settingsRow
	theme  model.ThemeSettings
}

func newSettingsState(theme model.ThemeSettings) settingsState {
	return settingsState{theme: theme}
}

var (
	themeModes    = []model.ThemeMode{model.ThemeLight, model.ThemeDark}
	themeDarkness = []model.ThemeDarkness{model.DarknessDim, model.DarknessLightsOut}
)

// cycle returns the value delta steps away from cur in xs, wrapping around.
func cycle[T comparable](xs []T, cur T, delta int) T {
	idx := 0
	for i, x := range xs {
		if x == cur {
			idx = i
		}
	}
	return xs[(idx+delta+len(xs))%len(xs)]
}

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		return m, m.navigate(navEvent{kind: navBack})
	case "up", "k":
		m.settings.cursor = (m.settings.cursor + settingsRowCount - 1) % settingsRowCount
	case "down", "j", "tab":
		m.settings.cursor = (m.settings.cursor + 1) % settingsRowCount
	case "left", "h":
		return m.changeSetting(m.settings.cursor, -1)
	case "right", "l", "enter", " ":
		return m.changeSetting(m.settings.cursor, 1)
	case "g":
		return m.changeSetting(settingGlyphs, 1)
	case "t":
		return m.changeSetting(settingTutorial, 1)
	}
	return m, nil
}

func (m appModel) changeSetting(row settingsRow, delta int) (tea.Model, tea.Cmd) {
	theme := m.settings.theme
	switch row {
	case settingMode:
		theme.Mode = cycle(themeModes, theme.Mode, delta)
	case settingPalette:
		theme.Palette = cycle(model.Palettes, theme.Palette, delta)
	case settingDarkness:
		theme.Darkness = cycle(themeDarkness, theme.Darkness, delta)
	case settingGlyphs:
		next := glyphSetASCII
		if glyphs() == glyphSetASCII {
			next = glyphSetUnicode
		}
		setGlyphs(next)
		m.refreshInputPrompts()
		if err := saveGlyphPreference(next); err != nil {
			logger.Get("tui").WithError(err).Warn("save glyph preference failed")
			return m, m.setStatus("Glyphs changed for this session; saving failed: "+err.Error(), true)
		}
		return m, m.setStatus("Glyphs: "+glyphsName(next), false)
	case settingTutorial:
		if err := m.store.SetTutorialCompleted(m.db, false); err != nil {
			return m, m.setStatus("Save failed: "+err.Error(), true)
		}
		m.captureStoreModTimes()
		m.tutorial = tutorialState{open: true}
		return m, nil
	default:
		return m, nil
	}

	if err := m.store.SaveTheme(m.db, theme); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.captureStoreModTimes()
	m.settings.theme = theme
	applyTheme(theme)
	resetMarkdownRenderers()
	return m, nil
}

func (m *appModel) refreshInputPrompts() {
	m.quick.input.Prompt = glyphCursor() + " "
}

func saveGlyphPreference(gs glyphSet) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.TUI == nil {
		cfg.TUI = &store.TUIConfig{}
	}
	cfg.TUI.Glyphs = glyphsName(gs)
	return store.SaveConfig(cfg)
}

func (m appModel) viewSettings() string {
	t := m.settings.theme
	modeLabels := map[model.ThemeMode]string{model.ThemeLight: "Light", model.ThemeDark: "Dark"}
	darknessLabels := map[model.ThemeDarkness]string{model.DarknessDim: "Dim", model.DarknessLightsOut: "Lights out"}

	rows := []struct {
		label string
		value string
		hint  string
	}{
		{"Theme", modeLabels[t.Mode], "light or dark"},
		{"Accent", paletteNames[t.Palette], fmt.Sprintf("%d palettes", len(model.Palettes))},
		{"Darkness", darknessLabels[t.Darkness], "dark mode background"},
		{"Glyphs", glyphsName(glyphs()), "ascii for fonts without box drawing"},
		{"Tutorial", "replay", "show the first-run tour again"},
	}

	labelW := 10
	var b strings.Builder
	b.WriteString(styleHeading().Render("Appearance"))
	b.WriteString("\n\n")
	for i, r := range rows {
		sel := settingsRow(i) == m.settings.cursor
		cursor := "  "
		if sel {
			cursor = glyphCursor() + " "
		}
		val := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSelectedFg).Background(colorControlBg)
		if sel {
			val = val.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
		}
		label := r.label + strings.Repeat(" ", labelW-len(r.label))
		b.WriteString(cursor + label + val.Render(r.value) + "  " + styleMuted().Render(r.hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHeading().Render("Preview"))
	b.WriteString("\n\n")
	swatch := lipgloss.NewStyle().Padding(0, 2).Background(colorAccent).Foreground(colorAccentFg).Render(paletteNames[t.Palette])
	surface := lipgloss.NewStyle().Padding(0, 2).Background(colorSurfaceBg).Foreground(colorSurfaceFg).Render("surface")
	b.WriteString(swatch + " " + surface + "  " + progressBar(60, 20))
	return b.String()
}
