package cli

import (
	"context"
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newShotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shots",
		Short: "Shot list commands",
	}
	cmd.AddCommand(newShotsAddCmd(app))
	cmd.AddCommand(newShotsRmCmd(app))
	cmd.AddCommand(newShotsUpdateCmd(app))
	cmd.AddCommand(newShotsGenerateCmd(app))
	return cmd
}

func newShotsAddCmd(app *App) *cobra.Command {
	var sh model.Shot
	var gear []string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Append a shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sh.Gear = trimAll(gear)
			res, err := mutate.AddShot(db, args[0], sh)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&sh.Scene, "scene", "", "Scene description")
	cmd.Flags().StringVar(&sh.Angle, "angle", "", "Camera angle")
	cmd.Flags().StringVar(&sh.Location, "location", "", "Location")
	cmd.Flags().StringSliceVar(&gear, "gear", nil, "Gear (repeatable or comma-separated)")
	cmd.Flags().StringVar(&sh.Notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func newShotsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <project-id> <shot-id>",
		Short: "Remove a shot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RemoveShot(db, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}
	return cmd
}

// newShotsUpdateCmd edits a shot in place. Only the flags given on the command
// line are changed.
func newShotsUpdateCmd(app *App) *cobra.Command {
	var in model.Shot
	var gear []string

	cmd := &cobra.Command{
		Use:   "update <project-id> <shot-id>",
		Short: "Edit a shot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			sh := model.Shot{ID: strings.TrimSpace(args[1])}
			for _, cur := range p.Strategy.Shots {
				if cur.ID == sh.ID {
					sh = cur
					break
				}
			}
			fl := cmd.Flags()
			if fl.Changed("scene") {
				sh.Scene = in.Scene
			}
			if fl.Changed("angle") {
				sh.Angle = in.Angle
			}
			if fl.Changed("location") {
				sh.Location = in.Location
			}
			if fl.Changed("gear") {
				sh.Gear = trimAll(gear)
			}
			if fl.Changed("notes") {
				sh.Notes = in.Notes
			}
			res, err := mutate.UpdateShot(db, p.ID, sh)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&in.Scene, "scene", "", "Scene description")
	cmd.Flags().StringVar(&in.Angle, "angle", "", "Camera angle")
	cmd.Flags().StringVar(&in.Location, "location", "", "Location")
	cmd.Flags().StringSliceVar(&gear, "gear", nil, "Gear (replaces the list)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	return cmd
}

func newShotsGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <project-id>",
		Short: "Replace the shot list with shots derived from the current script (AI)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			shots, err := aiClient(app).AnalyzeScriptForShots(context.Background(), p.Strategy.Script)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.ReplaceShots(db, p.ID, shots)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}
	return cmd
}

func newEditingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editing",
		Short: "Editing plan commands",
	}
	cmd.AddCommand(newEditingAddCmd(app))
	cmd.AddCommand(newEditingRmCmd(app))
	cmd.AddCommand(newEditingUpdateCmd(app))
	return cmd
}

func newEditingAddCmd(app *App) *cobra.Command {
	var st model.EditingStep
	var tools []string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Append an editing step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st.Tools = trimAll(tools)
			res, err := mutate.AddEditingStep(db, args[0], st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&st.Step, "step", "", "Step description")
	cmd.Flags().StringSliceVar(&tools, "tools", nil, "Tools (repeatable or comma-separated)")
	cmd.Flags().StringVar(&st.Notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("step")
	return cmd
}

func newEditingRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <project-id> <step-id>",
		Short: "Remove an editing step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RemoveEditingStep(db, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}
	return cmd
}

func newEditingUpdateCmd(app *App) *cobra.Command {
	var in model.EditingStep
	var tools []string

	cmd := &cobra.Command{
		Use:   "update <project-id> <step-id>",
		Short: "Edit an editing step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st := model.EditingStep{ID: strings.TrimSpace(args[1])}
			for _, cur := range p.Strategy.EditingPlan {
				if cur.ID == st.ID {
					st = cur
					break
				}
			}
			fl := cmd.Flags()
			if fl.Changed("step") {
				st.Step = in.Step
			}
			if fl.Changed("tools") {
				st.Tools = trimAll(tools)
			}
			if fl.Changed("notes") {
				st.Notes = in.Notes
			}
			res, err := mutate.UpdateEditingStep(db, p.ID, st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&in.Step, "step", "", "Step description")
	cmd.Flags().StringSliceVar(&tools, "tools", nil, "Tools (replaces the list)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	return cmd
}

func trimAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}
