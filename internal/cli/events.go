package cli

import (
	"frameflow-cli/internal/model"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var project string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the local activity log (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var evs []model.Event
			if project != "" {
				evs, err = s.ReadEventsForEntity(project, limit)
			} else {
				evs, err = s.ReadEvents(limit)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if evs == nil {
				evs = []model.Event{}
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	cmd.Flags().StringVar(&project, "project", "", "Only events for this project id")
	return cmd
}
