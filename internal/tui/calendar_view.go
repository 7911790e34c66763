package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/calendar"
)

type calendarState struct {
	year  int
	month time.Month
	day   int
	// event is the highlighted entry in the selected day's list.
	event int
}

func newCalendarState(now time.Time) calendarState {
	var c calendarState
	c.selectToday(now)
	return c
}

func (c *calendarState) selectToday(now time.Time) {
	now = now.Local()
	c.year, c.month, c.day = now.Year(), now.Month(), now.Day()
	c.event = 0
}

func (c calendarState) selected() time.Time {
	return time.Date(c.year, c.month, c.day, 0, 0, 0, 0, time.Local)
}

func (c *calendarState) moveDays(delta int) {
	t := c.selected().AddDate(0, 0, delta)
	c.year, c.month, c.day = t.Year(), t.Month(), t.Day()
	c.event = 0
}

// moveMonths keeps the day of month, clamped to the target month's length.
func (c *calendarState) moveMonths(delta int) {
	c.year, c.month = calendar.StepMonth(c.year, c.month, delta)
	if n := calendar.DaysInMonth(c.year, c.month); c.day > n {
		c.day = n
	}
	c.event = 0
}

func (m appModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prevMonth := m.cal.month
	switch msg.String() {
	case "esc", "backspace", "q":
		return m, m.navigate(navEvent{kind: navBack})
	case "left", "h":
		m.cal.moveDays(-1)
	case "right", "l":
		m.cal.moveDays(1)
	case "up", "k":
		m.cal.moveDays(-7)
	case "down", "j":
		m.cal.moveDays(7)
	case "[", "pgup":
		m.cal.moveMonths(-1)
	case "]", "pgdown":
		m.cal.moveMonths(1)
	case ".":
		m.cal.selectToday(m.now())
	case "tab":
		if n := len(calendar.EventsForDay(m.db.Projects, m.cal.selected())); n > 0 {
			m.cal.event = (m.cal.event + 1) % n
		}
	case "enter":
		events := calendar.EventsForDay(m.db.Projects, m.cal.selected())
		if m.cal.event < len(events) {
			return m, m.navigate(openProject(events[m.cal.event].ProjectID))
		}
		return m, nil
	}
	if m.cal.month != prevMonth {
		m.saveTUIState()
	}
	return m, nil
}

func (m appModel) viewCalendar() string {
	bodyW, bodyH := m.bodySize()
	sideW := 0
	if bodyW >= 90 {
		sideW = 32
	}
	gridW := bodyW
	if sideW > 0 {
		gridW = bodyW - sideW - 3
	}
	cellW := gridW / 7
	if cellW < 4 {
		cellW = 4
	}
	if cellW > 14 {
		cellW = 14
	}

	grid := m.renderMonthGrid(cellW)
	if sideW == 0 {
		day := m.viewCalendarDay(bodyW)
		return grid + "\n\n" + day
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(grid, gridW, bodyH),
		"   ",
		normalizePane(m.viewCalendarDay(sideW), sideW, bodyH),
	)
}

func (m appModel) renderMonthGrid(cellW int) string {
	g := calendar.MonthGrid(m.cal.year, m.cal.month)
	events := calendar.EventsForMonth(m.db.Projects, m.cal.year, m.cal.month, time.Local)
	now := m.now().Local()
	isThisMonth := now.Year() == m.cal.year && now.Month() == m.cal.month

	var b strings.Builder
	b.WriteString(styleHeading().Render(fmt.Sprintf("%s %d", m.cal.month, m.cal.year)))
	b.WriteString("\n\n")

	weekday := lipgloss.NewStyle().Width(cellW).Foreground(colorChromeMutedFg)
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(weekday.Render(d))
	}
	b.WriteString("\n")

	for _, week := range g.Weeks {
		var nums, marks strings.Builder
		for _, d := range week {
			cell := lipgloss.NewStyle().Width(cellW)
			if d == 0 {
				nums.WriteString(cell.Render(""))
				marks.WriteString(cell.Render(""))
				continue
			}
			st := cell.Foreground(colorSurfaceFg)
			switch {
			case d == m.cal.day:
				st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
			case isThisMonth && d == now.Day():
				st = st.Foreground(colorAccent).Bold(true).Underline(true)
			}
			nums.WriteString(st.Render(fmt.Sprintf("%2d", d)))
			marks.WriteString(cell.Render(eventMarks(events[d], cellW)))
		}
		b.WriteString(nums.String())
		b.WriteString("\n")
		b.WriteString(marks.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// eventMarks renders one colored bullet per event, collapsing overflow into "+N".
func eventMarks(events []calendar.Event, width int) string {
	if len(events) == 0 {
		return ""
	}
	room := width - 3
	if room < 1 {
		room = 1
	}
	var parts []string
	for i, ev := range events {
		if i == room {
			parts = append(parts, styleMuted().Render(fmt.Sprintf("+%d", len(events)-room)))
			break
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(phaseColor(ev.Phase)).Render(glyphBullet()))
	}
	return strings.Join(parts, "")
}

func (m appModel) viewCalendarDay(width int) string {
	sel := m.cal.selected()
	events := calendar.EventsForDay(m.db.Projects, sel)

	var b strings.Builder
	b.WriteString(styleHeading().Render(sel.Format("Monday, Jan 2")))
	b.WriteString("\n\n")
	if len(events) == 0 {
		b.WriteString(styleMuted().Render("Nothing scheduled."))
		return b.String()
	}
	for i, ev := range events {
		phase := lipgloss.NewStyle().Foreground(phaseColor(ev.Phase)).Render(glyphBullet() + " " + string(ev.Phase))
		line := fmt.Sprintf("%s  %s", ev.Date.Format("15:04"), ev.ProjectTitle)
		b.WriteString(rowStyle(i == m.cal.event).Render(fitWidth(line, width)))
		b.WriteString("\n")
		detail := phase
		if seg := strings.TrimSpace(ev.Segment); seg != "" {
			detail += "  " + seg
		}
		if ev.DurationMin != nil {
			detail += fmt.Sprintf(" (%d min)", *ev.DurationMin)
		}
		b.WriteString(truncateToWidth("  "+detail, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
