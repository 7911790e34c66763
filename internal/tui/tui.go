package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/store"
)

type Options struct {
	Store     store.Store
	DB        *store.DB
	Workspace string
	AI        ai.StrategyClient
}

func Run(opts Options) error {
	applyColorProfilePreference()
	glyphPref := ""
	if cfg, err := store.LoadConfig(); err != nil {
		logger.Get("tui").WithError(err).Warn("load config failed; using default glyphs")
	} else if cfg.TUI != nil {
		glyphPref = cfg.TUI.Glyphs
	}
	applyGlyphPreference(glyphPref)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
