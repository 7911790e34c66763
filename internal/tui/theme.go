package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"frameflow-cli/internal/model"
)

// Colors are AdaptiveColor pairs so the same styles work for both theme modes.
// applyTheme swaps the accent and surface colors when ThemeSettings change.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// paletteAccents holds the accent per palette as light/dark hex.
var paletteAccents = map[model.ThemePalette]lipgloss.AdaptiveColor{
	model.PaletteIndigo:   ac("#4f46e5", "#6366f1"),
	model.PaletteSlate:    ac("#334155", "#22d3ee"),
	model.PaletteRosePine: ac("#d45c7c", "#ebbc6c"),
	model.PaletteForest:   ac("#166534", "#4ade80"),
	model.PaletteCrimson:  ac("#be123c", "#f472b6"),
	model.PaletteBlue:     ac("#3b82f6", "#60a5fa"),
}

var paletteNames = map[model.ThemePalette]string{
	model.PaletteIndigo:   "Indigo",
	model.PaletteSlate:    "Slate",
	model.PaletteRosePine: "Rosé",
	model.PaletteForest:   "Forest",
	model.PaletteCrimson:  "Crimson",
	model.PaletteBlue:     "Blue",
}

// darknessSurfaces is the dark-mode surface per darkness level. Light mode ignores it.
var darknessSurfaces = map[model.ThemeDarkness]string{
	model.DarknessDim:       "#15202b",
	model.DarknessLightsOut: "#000000",
}

var (
	colorMuted          = ac("240", "243")
	colorChromeMutedFg  = ac("240", "245")
	colorSelectedBg     = ac("#e9e9e9", "#262626")
	colorSelectedFg     = ac("235", "255")
	colorCardBorder     = ac("250", "243")
	colorSurfaceBg      = ac("255", darknessSurfaces[model.DarknessDim])
	colorSurfaceFg      = ac("235", "252")
	colorControlBg      = ac("252", "235")
	colorInputBg        = ac("254", "234")
	colorAccent         = paletteAccents[model.PaletteIndigo]
	colorAccentFg       = ac("255", "235")
	colorCardMetaFg     = ac("238", "250")
	colorErrorFg        = ac("160", "203")
	colorSuccessFg      = ac("28", "78")
	colorPhaseFilming   = ac("#2563eb", "#60a5fa")
	colorPhaseEditing   = ac("#7c3aed", "#a78bfa")
	colorPhasePublished = ac("#059669", "#34d399")
)

// applyTheme points the shared colors at the user's ThemeSettings. Mode decides which half
// of every AdaptiveColor is used.
func applyTheme(t model.ThemeSettings) {
	lipgloss.SetHasDarkBackground(t.Mode != model.ThemeLight)
	if c, ok := paletteAccents[t.Palette]; ok {
		colorAccent = c
	} else {
		colorAccent = paletteAccents[model.PaletteIndigo]
	}
	bg, ok := darknessSurfaces[t.Darkness]
	if !ok {
		bg = darknessSurfaces[model.DarknessDim]
	}
	colorSurfaceBg = ac("255", bg)
	if t.Darkness == model.DarknessLightsOut {
		colorControlBg = ac("252", "#16181c")
		colorInputBg = ac("254", "#0b0b0d")
	} else {
		colorControlBg = ac("252", "#1e2732")
		colorInputBg = ac("254", "#192734")
	}
}

func phaseColor(p model.Phase) lipgloss.AdaptiveColor {
	switch p {
	case model.PhaseFilming:
		return colorPhaseFilming
	case model.PhaseEditing:
		return colorPhaseEditing
	default:
		return colorPhasePublished
	}
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleHeading() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable colors in a TUI.
// Here only NO_COLOR is honored and otherwise the terminal's capabilities are followed.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// TERM/COLORTERM can report stronger support than the detector (macOS Terminal.app).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}
