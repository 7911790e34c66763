package cli

import (
	"fmt"
	"os"

	"frameflow-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all projects as a JSON array (stdout or --out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.ExportJSON(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if out == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			if err := os.WriteFile(out, append(b, '\n'), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": out, "projects": len(db.Projects)},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all projects with the contents of an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ps, err := store.ImportJSON(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.ReplaceProjects(db, ps); err != nil {
				return writeErr(cmd, err)
			}
			for _, p := range ps {
				appendEvent(s, "project.import", p.ID, map[string]any{"title": p.Title})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"imported": len(ps)},
			})
		},
	}
	return cmd
}
