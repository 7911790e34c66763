// Package calendar derives dated views from project schedules: the month grid,
// the events of a single day and the upcoming agenda.
package calendar

import (
	"sort"
	"time"

	"frameflow-cli/internal/model"
)

// Event is one schedule item placed on the calendar.
type Event struct {
	Phase        model.Phase `json:"phase"`
	ProjectID    string      `json:"projectId"`
	ProjectTitle string      `json:"projectTitle"`
	ItemID       string      `json:"itemId"`
	Segment      string      `json:"segment"`
	Date         time.Time   `json:"date"`
	DurationMin  *int        `json:"durationMin,omitempty"`
	Platform     string      `json:"platform,omitempty"`
}

// Grid is a month laid out in Sunday-first weeks. A zero cell is padding.
type Grid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks [][7]int   `json:"weeks"`
}

func DaysInMonth(year int, month time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of the 1st of the month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// MonthGrid lays out the month. Rows stop once every day is placed, so a grid has 4 to 6 weeks.
func MonthGrid(year int, month time.Month) Grid {
	// Normalize out-of-range months (e.g. 13 -> January next year).
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = norm.Year(), norm.Month()

	g := Grid{Year: year, Month: month}
	n := DaysInMonth(year, month)
	col := int(FirstWeekday(year, month))
	var week [7]int
	for d := 1; d <= n; d++ {
		week[col] = d
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// StepMonth moves delta months from year/month, crossing year boundaries.
func StepMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// collect walks every dated item of every non-archived project.
func collect(ps []model.Project, loc *time.Location, keep func(time.Time) bool) []Event {
	out := []Event{}
	for _, p := range ps {
		if p.Archived {
			continue
		}
		for _, ph := range model.Phases {
			for _, it := range p.Schedule.Items(ph) {
				if it.Date == nil {
					continue
				}
				at := it.Date.In(loc)
				if !keep(at) {
					continue
				}
				out = append(out, Event{
					Phase:        ph,
					ProjectID:    p.ID,
					ProjectTitle: p.Title,
					ItemID:       it.ID,
					Segment:      it.Segment,
					Date:         at,
					DurationMin:  it.DurationMin,
					Platform:     it.Platform,
				})
			}
		}
	}
	return out
}

// EventsForDay returns items whose date falls on day's calendar day in day's location.
// Time of day is ignored. Order follows the project list, then phase order.
func EventsForDay(ps []model.Project, day time.Time) []Event {
	return collect(ps, day.Location(), func(at time.Time) bool { return sameDay(at, day) })
}

// EventsForMonth groups the month's events by day of month.
func EventsForMonth(ps []model.Project, year int, month time.Month, loc *time.Location) map[int][]Event {
	if loc == nil {
		loc = time.Local
	}
	out := map[int][]Event{}
	for _, ev := range collect(ps, loc, func(at time.Time) bool { return at.Year() == year && at.Month() == month }) {
		out[ev.Date.Day()] = append(out[ev.Date.Day()], ev)
	}
	return out
}

// Upcoming returns events in [start of from's day, +days) sorted by date.
func Upcoming(ps []model.Project, from time.Time, days int) []Event {
	if days <= 0 {
		return []Event{}
	}
	y, m, d := from.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	end := start.AddDate(0, 0, days)
	out := collect(ps, from.Location(), func(at time.Time) bool { return !at.Before(start) && at.Before(end) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
