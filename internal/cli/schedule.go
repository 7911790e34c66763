package cli

import (
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Filming, editing and publishing schedule",
	}
	cmd.AddCommand(newScheduleAddCmd(app))
	cmd.AddCommand(newScheduleRmCmd(app))
	cmd.AddCommand(newScheduleUpdateCmd(app))
	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var (
		phase    string
		segment  string
		date     string
		duration int
		platform string
	)

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a schedule item to a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := model.ParsePhase(phase)
			if err != nil {
				return writeErr(cmd, err)
			}
			item := model.ScheduleItem{Segment: segment, Platform: platform}
			if item.Date, err = parseOptionalDateTime(date); err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("duration") {
				d := duration
				item.DurationMin = &d
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddScheduleItem(db, args[0], ph, item)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase (filming|editing|publishing)")
	cmd.Flags().StringVar(&segment, "segment", "", "Segment name")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform (publishing items)")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("segment")
	return cmd
}

func newScheduleRmCmd(app *App) *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "rm <project-id> <item-id>",
		Short: "Remove a schedule item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := model.ParsePhase(phase)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RemoveScheduleItem(db, args[0], ph, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase (filming|editing|publishing)")
	_ = cmd.MarkFlagRequired("phase")
	return cmd
}

// newScheduleUpdateCmd reschedules or renames an item without changing its id.
func newScheduleUpdateCmd(app *App) *cobra.Command {
	var (
		phase     string
		segment   string
		date      string
		clearDate bool
		duration  int
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "update <project-id> <item-id>",
		Short: "Edit a schedule item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := model.ParsePhase(phase)
			if err != nil {
				return writeErr(cmd, err)
			}
			fl := cmd.Flags()
			if fl.Changed("date") && clearDate {
				return writeErr(cmd, mutate.ValidationError{Field: "date", Message: "--date and --clear-date are mutually exclusive"})
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			item := model.ScheduleItem{ID: strings.TrimSpace(args[1])}
			for _, cur := range p.Schedule.Items(ph) {
				if cur.ID == item.ID {
					item = cur
					break
				}
			}
			if fl.Changed("segment") {
				item.Segment = segment
			}
			if fl.Changed("date") {
				if item.Date, err = parseOptionalDateTime(date); err != nil {
					return writeErr(cmd, err)
				}
			}
			if clearDate {
				item.Date = nil
			}
			if fl.Changed("duration") {
				d := duration
				item.DurationMin = &d
			}
			if fl.Changed("platform") {
				item.Platform = platform
			}
			res, err := mutate.UpdateScheduleItem(db, p.ID, ph, item)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase (filming|editing|publishing)")
	cmd.Flags().StringVar(&segment, "segment", "", "Segment name")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().BoolVar(&clearDate, "clear-date", false, "Remove the date")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform (publishing items)")
	_ = cmd.MarkFlagRequired("phase")
	return cmd
}
