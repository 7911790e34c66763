package cli

import (
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Appearance settings (mode, palette, darkness)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Theme})
		},
	})
	cmd.AddCommand(newThemeSetCmd(app))
	return cmd
}

func newThemeSetCmd(app *App) *cobra.Command {
	var mode, palette, darkness string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change theme settings; unspecified fields keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := db.Theme
			if cmd.Flags().Changed("mode") {
				t.Mode = model.ThemeMode(strings.ToLower(strings.TrimSpace(mode)))
			}
			if cmd.Flags().Changed("palette") {
				t.Palette = model.ThemePalette(strings.ToLower(strings.TrimSpace(palette)))
			}
			if cmd.Flags().Changed("darkness") {
				t.Darkness = model.ThemeDarkness(strings.ToLower(strings.TrimSpace(darkness)))
			}
			if err := mutate.ValidateTheme(t); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveTheme(db, t); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "light|dark")
	cmd.Flags().StringVar(&palette, "palette", "", "indigo|slate|rose-pine|forest|crimson|blue")
	cmd.Flags().StringVar(&darkness, "darkness", "", "dim|lights-out")
	return cmd
}

func newTutorialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "First-run tour state",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the tour was completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"completed": db.TutorialCompleted}})
		},
	}

	set := func(use, short string, done bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, s, err := loadDB(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := s.SetTutorialCompleted(db, done); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"completed": done}})
			},
		}
	}

	cmd.AddCommand(status)
	cmd.AddCommand(set("complete", "Mark the tour as completed", true))
	cmd.AddCommand(set("reset", "Show the tour again on next TUI start", false))
	return cmd
}
