package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/calendar"
	"frameflow-cli/internal/model"
)

type dashboardTab int

const (
	dashboardActive dashboardTab = iota
	dashboardCompleted
)

const agendaDays = 7

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
			return m, m.navigate(openProject(it.project.ID))
		}
		return m, nil
	case "n":
		return m, m.navigate(navEvent{kind: navNewProject})
	case "a":
		return m, m.navigate(navEvent{kind: navQuickAdd})
	case "s":
		return m, m.navigate(navEvent{kind: navOpenSettings})
	case "t":
		return m, m.navigate(navEvent{kind: navOpenTools})
	case "v":
		return m, m.navigate(navEvent{kind: navOpenArchive})
	case "c":
		return m, m.navigate(navEvent{kind: navOpenCalendar})
	case "?":
		m.tutorial = tutorialState{open: true}
		return m, nil
	case "tab":
		if m.dashboardTab == dashboardActive {
			m.dashboardTab = dashboardCompleted
		} else {
			m.dashboardTab = dashboardActive
		}
		m.projectsList.Select(0)
		m.refreshProjects()
		return m, nil
	case "r":
		m.reloadFromDisk()
		return m, m.setStatus("Reloaded", false)
	}
	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

func (m appModel) viewDashboard() string {
	bodyW, _ := m.bodySize()
	views := model.Partition(m.db.Projects)

	tabs := renderTabs([]string{
		fmt.Sprintf("Active (%d)", len(views.Active)),
		fmt.Sprintf("Completed (%d)", len(views.Completed)),
	}, int(m.dashboardTab))

	var listView string
	if len(m.projectsList.Items()) == 0 {
		empty := "No active projects. Press n to plan one or a to let AI set it up."
		if m.dashboardTab == dashboardCompleted {
			empty = "Nothing completed yet. Projects land here at 100%."
		}
		listView = styleMuted().Render(empty)
	} else {
		listView = m.projectsList.View()
	}
	left := tabs + "\n\n" + listView

	if bodyW < 90 {
		return left
	}
	leftW := m.projectsList.Width()
	rightW := bodyW - leftW - 3
	right := m.viewAgenda(rightW, views)
	_, bodyH := m.bodySize()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(left, leftW, bodyH),
		"   ",
		normalizePane(right, rightW, bodyH),
	)
}

// viewAgenda is the dashboard sidebar: counts and the next week of schedule items.
func (m appModel) viewAgenda(width int, views model.Views) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("Overview"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d active %s %d completed %s %d archived\n\n",
		len(views.Active), glyphBullet(), len(views.Completed), glyphBullet(), len(views.Archived)))

	b.WriteString(styleHeading().Render(fmt.Sprintf("Next %d days", agendaDays)))
	b.WriteString("\n")
	events := calendar.Upcoming(m.db.Projects, m.now(), agendaDays)
	if len(events) == 0 {
		b.WriteString(styleMuted().Render("Nothing scheduled."))
		return b.String()
	}
	for _, ev := range events {
		phase := lipgloss.NewStyle().Foreground(phaseColor(ev.Phase)).Render(string(ev.Phase))
		line := fmt.Sprintf("%s  %s  %s", ev.Date.Format("Mon Jan 2"), phase, ev.ProjectTitle)
		b.WriteString(truncateToWidth(line, width))
		b.WriteString("\n")
		if seg := strings.TrimSpace(ev.Segment); seg != "" {
			b.WriteString(styleMuted().Render(truncateToWidth("  "+seg, width)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorChromeMutedFg)
		if i == active {
			st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
		}
		parts = append(parts, st.Render(l))
	}
	return strings.Join(parts, " ")
}
