package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"frameflow-cli/internal/model"
)

type RenderOptions struct {
	// Location is used for dates; nil means time.Local.
	Location *time.Location
}

func (o RenderOptions) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// RenderProjectMarkdown renders a production brief: meta, progress, script, shot list,
// editing plan and schedule.
func RenderProjectMarkdown(p model.Project, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	loc := opt.loc()

	writeLn("# " + strings.TrimSpace(p.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + p.ID)
	writeLn("- Type: " + string(p.ContentType))
	writeLn("- Platform: " + string(p.Platform))
	if p.Deadline != nil {
		writeLn("- Deadline: " + p.Deadline.In(loc).Format("2006-01-02"))
	}
	if p.Archived {
		writeLn("- Archived: yes")
	}
	writeLn("- Updated: " + p.UpdatedAt.In(loc).Format("2006-01-02 15:04"))
	writeLn("")

	writeLn("## Idea")
	writeLn("")
	writeLn(strings.TrimSpace(p.Idea))
	writeLn("")

	writeLn(fmt.Sprintf("## Progress (%d%%)", p.Progress.Percent))
	writeLn("")
	for _, m := range model.Milestones {
		box := " "
		if p.Progress.Done(m) {
			box = "x"
		}
		writeLn(fmt.Sprintf("- [%s] %s", box, m))
	}
	writeLn("")

	if script := strings.TrimSpace(p.Strategy.Script); script != "" {
		writeLn("## Script")
		writeLn("")
		writeLn(script)
		writeLn("")
	}

	if len(p.Strategy.Shots) > 0 {
		writeLn("## Shot list")
		writeLn("")
		writeLn("| # | Scene | Angle | Location | Gear | Notes |")
		writeLn("|---|---|---|---|---|---|")
		for i, sh := range p.Strategy.Shots {
			writeLn(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |", i+1,
				cell(sh.Scene), cell(sh.Angle), cell(sh.Location), cell(strings.Join(sh.Gear, ", ")), cell(sh.Notes)))
		}
		writeLn("")
	}

	if len(p.Strategy.EditingPlan) > 0 {
		writeLn("## Editing plan")
		writeLn("")
		for i, st := range p.Strategy.EditingPlan {
			line := fmt.Sprintf("%d. **%s**", i+1, strings.TrimSpace(st.Step))
			if len(st.Tools) > 0 {
				line += " (" + strings.Join(st.Tools, ", ") + ")"
			}
			if n := strings.TrimSpace(st.Notes); n != "" {
				line += ": " + n
			}
			writeLn(line)
		}
		writeLn("")
	}

	var sched []string
	for _, ph := range model.Phases {
		items := p.Schedule.Items(ph)
		if len(items) == 0 {
			continue
		}
		sched = append(sched, "### "+strings.ToUpper(string(ph)[:1])+string(ph)[1:], "")
		for _, it := range items {
			when := "unscheduled"
			if it.Date != nil {
				when = it.Date.In(loc).Format("2006-01-02 15:04")
			}
			line := fmt.Sprintf("- %s: %s", when, strings.TrimSpace(it.Segment))
			if it.DurationMin != nil {
				line += fmt.Sprintf(" (%d min)", *it.DurationMin)
			}
			if it.Platform != "" {
				line += " @ " + it.Platform
			}
			sched = append(sched, line)
		}
		sched = append(sched, "")
	}
	if len(sched) > 0 {
		writeLn("## Schedule")
		writeLn("")
		for _, s := range sched {
			writeLn(s)
		}
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// RenderIndexMarkdown lists projects with links to their briefs under projects/.
func RenderIndexMarkdown(ps []model.Project) string {
	var buf bytes.Buffer
	buf.WriteString("# Projects\n\n")
	if len(ps) == 0 {
		buf.WriteString("_No projects._\n")
		return buf.String()
	}
	buf.WriteString("| Project | Type | Platform | Progress |\n")
	buf.WriteString("|---|---|---|---|\n")
	for _, p := range ps {
		title := cell(p.Title)
		if p.Archived {
			title += " (archived)"
		}
		fmt.Fprintf(&buf, "| [%s](projects/%s.md) | %s | %s | %d%% |\n", title, p.ID, p.ContentType, p.Platform, p.Progress.Percent)
	}
	return buf.String()
}

// cell makes s safe for a single markdown table cell.
func cell(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	s = strings.ReplaceAll(s, "|", "\\|")
	if s == "" {
		return "-"
	}
	return s
}
