package cli

import (
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Production milestones (idea, script, filming, editing, publishing)",
	}
	cmd.AddCommand(newProgressSetCmd(app))
	return cmd
}

func newProgressSetCmd(app *App) *cobra.Command {
	var undone bool

	cmd := &cobra.Command{
		Use:   "set <project-id> <milestone>",
		Short: "Mark a milestone done (or not done with --undone); percent is recomputed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseMilestone(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetMilestone(db, args[0], m, !undone)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().BoolVar(&undone, "undone", false, "Clear the milestone instead of setting it")
	return cmd
}
