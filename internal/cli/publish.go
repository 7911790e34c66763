package cli

import (
	"errors"

	"frameflow-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to              string
		all             bool
		includeArchived bool
		overwrite       bool
	)

	cmd := &cobra.Command{
		Use:   "publish [<project-id>]",
		Short: "Write markdown production briefs (one project, or --all with an index)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return writeErr(cmd, errors.New("pass a project id or --all"))
			}
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.WriteOptions{IncludeArchived: includeArchived, Overwrite: overwrite}
			var res publish.WriteResult
			if all {
				res, err = publish.WriteAll(db, to, opt)
			} else {
				res, err = publish.WriteProject(db, args[0], to, opt)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&all, "all", false, "Publish every project plus index.md")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived projects")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
