package cli

import (
	"errors"
	"time"

	"frameflow-cli/internal/calendar"

	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Scheduled filming, editing and publishing items (local time, archived projects hidden)",
	}
	cmd.AddCommand(newCalendarMonthCmd(app))
	cmd.AddCommand(newCalendarDayCmd(app))
	cmd.AddCommand(newCalendarAgendaCmd(app))
	return cmd
}

func newCalendarMonthCmd(app *App) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Month grid with events grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if !cmd.Flags().Changed("year") {
				year = now.Year()
			}
			if !cmd.Flags().Changed("month") {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return writeErr(cmd, errors.New("--month must be between 1 and 12"))
			}
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m := time.Month(month)
			grid := calendar.MonthGrid(year, m)
			events := calendar.EventsForMonth(db.Projects, year, m, time.Local)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"year":        grid.Year,
					"month":       int(grid.Month),
					"monthName":   grid.Month.String(),
					"daysInMonth": calendar.DaysInMonth(year, m),
					"firstDay":    calendar.FirstWeekday(year, m).String(),
					"weeks":       grid.Weeks,
					"events":      events,
				},
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current)")
	return cmd
}

func newCalendarDayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Events on one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				d, err := parseDateTime(date)
				if err != nil {
					return writeErr(cmd, err)
				}
				day = d.In(time.Local)
			}
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs := calendar.EventsForDay(db.Projects, day)
			return writeOut(cmd, app, map[string]any{
				"data": evs,
				"meta": map[string]any{"date": day.Format("2006-01-02"), "count": len(evs)},
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD; default: today)")
	return cmd
}

func newCalendarAgendaCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Upcoming events from today, sorted by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs := calendar.Upcoming(db.Projects, time.Now(), days)
			return writeOut(cmd, app, map[string]any{
				"data": evs,
				"meta": map[string]any{"days": days, "count": len(evs)},
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to include")
	return cmd
}
