package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"frameflow-cli/internal/model"
)

// projectItem is a dashboard/archive row.
type projectItem struct {
	project model.Project
}

func (it projectItem) Title() string { return it.project.Title }
func (it projectItem) Description() string {
	return fmt.Sprintf("%s %s %s  %d%%", it.project.ContentType, glyphBullet(), it.project.Platform, it.project.Progress.Percent)
}
func (it projectItem) FilterValue() string { return it.project.Title }

// cardDelegate renders a project as a bordered card: title, meta line, progress bar.
type cardDelegate struct {
	now func() time.Time
}

func newProjectCardDelegate() cardDelegate {
	return cardDelegate{now: time.Now}
}

func (d cardDelegate) Height() int                             { return 5 } // 3 inner lines + border
func (d cardDelegate) Spacing() int                            { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		return
	}
	it, ok := item.(projectItem)
	if !ok {
		return
	}

	card := lipgloss.NewStyle().
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)
	if index == m.Index() {
		card = card.BorderForeground(colorAccent)
	}
	innerW := totalW - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	p := it.project
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "(untitled)"
	}
	meta := string(p.ContentType) + " " + glyphBullet() + " " + string(p.Platform)
	if p.Deadline != nil {
		meta += "  |  " + deadlineLabel(*p.Deadline, d.now())
	}
	barW := innerW - 6
	if barW > 30 {
		barW = 30
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(truncateToWidth(title, innerW)),
		lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(truncateToWidth(meta, innerW)),
		progressBar(p.Progress.Percent, barW),
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

// deadlineLabel is "due Jan 2" with an "overdue" or "today" marker relative to now.
func deadlineLabel(deadline, now time.Time) string {
	dl := deadline.In(now.Location())
	label := "due " + dl.Format("Jan 2")
	if dl.Year() != now.Year() {
		label = "due " + dl.Format("Jan 2, 2006")
	}
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, now.Location())
	switch {
	case dl.Before(today):
		label += " (overdue)"
	case dl.Before(today.AddDate(0, 0, 1)):
		label += " (today)"
	}
	return label
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
