package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/calendar"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
)

type detailsTab int

const (
	tabScript detailsTab = iota
	tabShots
	tabEditing
	tabSchedule
)

var detailsTabNames = []string{"script", "shots", "editing", "schedule"}

func (t detailsTab) String() string {
	if int(t) >= 0 && int(t) < len(detailsTabNames) {
		return detailsTabNames[t]
	}
	return detailsTabNames[0]
}

func parseDetailsTab(s string) detailsTab {
	for i, n := range detailsTabNames {
		if n == strings.TrimSpace(s) {
			return detailsTab(i)
		}
	}
	return tabScript
}

const (
	pendingRegenerate = "regenerate"
	pendingRefine     = "refine"
	pendingShots      = "shots"
)

type detailsState struct {
	tab    detailsTab
	cursor int
	scroll int

	refining   bool
	refine     textinput.Model
	refineForm ai.ScriptForm

	// pending names the AI request in flight ("" when idle).
	pending string
	err     string

	edit *fieldForm
	// item is the add or edit form for a shot, editing step or schedule item.
	// itemRef is zero when the form adds a new row.
	item    *fieldForm
	itemRef itemRef
}

// itemRef names the row an item form edits.
type itemRef struct {
	id    string
	phase model.Phase
}

func newDetailsState(tab detailsTab) detailsState {
	in := textinput.New()
	in.Prompt = "Refine: "
	in.Placeholder = "e.g. make the hook punchier"
	in.CharLimit = 300
	return detailsState{tab: tab, refine: in, refineForm: ai.FormShort}
}

// scheduleRow is one line of the flattened schedule tab.
type scheduleRow struct {
	phase model.Phase
	item  model.ScheduleItem
}

func scheduleRows(p model.Project) []scheduleRow {
	var rows []scheduleRow
	for _, ph := range model.Phases {
		for _, it := range p.Schedule.Items(ph) {
			rows = append(rows, scheduleRow{phase: ph, item: it})
		}
	}
	return rows
}

func (m appModel) currentProject() (*model.Project, bool) {
	if m.db == nil {
		return nil, false
	}
	return m.db.FindProject(m.nav.projectID)
}

func (m appModel) detailsRowCount(p model.Project) int {
	switch m.details.tab {
	case tabShots:
		return len(p.Strategy.Shots)
	case tabEditing:
		return len(p.Strategy.EditingPlan)
	case tabSchedule:
		return len(scheduleRows(p))
	}
	return 0
}

func (m appModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.currentProject()
	if !ok {
		switch msg.String() {
		case "esc", "backspace", "q":
			return m, m.navigate(navEvent{kind: navBack})
		}
		return m, nil
	}

	if m.details.edit != nil {
		return m.updateEditForm(msg)
	}
	if m.details.item != nil {
		return m.updateItemForm(msg)
	}
	if m.details.refining {
		return m.updateRefineInput(msg, *p)
	}

	switch msg.String() {
	case "esc", "backspace", "q":
		return m, m.navigate(navEvent{kind: navBack})
	case "tab", "right", "l":
		m.details.tab = (m.details.tab + 1) % detailsTab(len(detailsTabNames))
		m.details.cursor, m.details.scroll = 0, 0
		m.saveTUIState()
		return m, nil
	case "shift+tab", "left", "h":
		m.details.tab = (m.details.tab + detailsTab(len(detailsTabNames)) - 1) % detailsTab(len(detailsTabNames))
		m.details.cursor, m.details.scroll = 0, 0
		m.saveTUIState()
		return m, nil
	case "down", "j":
		if m.details.tab == tabScript {
			m.details.scroll++
		} else if m.details.cursor < m.detailsRowCount(*p)-1 {
			m.details.cursor++
		}
		return m, nil
	case "up", "k":
		if m.details.tab == tabScript {
			if m.details.scroll > 0 {
				m.details.scroll--
			}
		} else if m.details.cursor > 0 {
			m.details.cursor--
		}
		return m, nil
	case "1", "2", "3", "4", "5":
		i, _ := strconv.Atoi(msg.String())
		ms := model.Milestones[i-1]
		res, err := mutate.SetMilestone(m.db, p.ID, ms, !p.Progress.Done(ms))
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		if err := m.commit(res); err != nil {
			return m, m.setStatus("Save failed: "+err.Error(), true)
		}
		state := "done"
		if !res.Project.Progress.Done(ms) {
			state = "not done"
		}
		return m, m.setStatus(fmt.Sprintf("%s marked %s (%d%%)", ms, state, res.Project.Progress.Percent), false)
	case "e":
		f := newEditProjectForm(*p)
		f.setWidth(modalBodyWidth(m.width))
		m.details.edit = &f
		return m, nil
	case "n":
		f, ok := newAddItemForm(m.details.tab)
		if !ok {
			return m, nil
		}
		f.setWidth(modalBodyWidth(m.width))
		m.details.item = &f
		m.details.itemRef = itemRef{}
		return m, nil
	case "enter":
		f, ref, ok := newEditItemForm(m.details.tab, *p, m.details.cursor)
		if !ok {
			return m, nil
		}
		f.setWidth(modalBodyWidth(m.width))
		m.details.item = &f
		m.details.itemRef = ref
		return m, nil
	case "x":
		return m.removeSelectedRow(*p)
	case "T":
		if m.details.tab != tabScript {
			return m, nil
		}
		script := ai.ScriptTemplateShortForm
		res, err := mutate.UpdateFields(m.db, p.ID, mutate.ProjectPatch{Script: &script})
		if err == nil {
			err = m.commit(res)
		}
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, m.setStatus("Script replaced with the short-form template", false)
	case "r":
		if m.details.tab != tabScript || m.details.pending != "" {
			return m, nil
		}
		if m.ai == nil {
			m.details.err = errNoAI
			return m, nil
		}
		m.details.refining = true
		m.details.err = ""
		return m, m.details.refine.Focus()
	case "g":
		if m.details.pending != "" {
			return m, nil
		}
		if m.ai == nil {
			m.details.err = errNoAI
			return m, nil
		}
		m.details.pending = pendingRegenerate
		m.details.err = ""
		return m, tea.Batch(m.spinner.Tick, regenerateCmd(m.ai, m.seq, *p))
	case "S":
		if m.details.pending != "" {
			return m, nil
		}
		if strings.TrimSpace(p.Strategy.Script) == "" {
			m.details.err = "Write or generate a script first."
			return m, nil
		}
		if m.ai == nil {
			m.details.err = errNoAI
			return m, nil
		}
		m.details.pending = pendingShots
		m.details.err = ""
		return m, tea.Batch(m.spinner.Tick, analyzeShotsCmd(m.ai, m.seq, p.ID, p.Strategy.Script))
	case "a":
		res, err := mutate.SetProjectArchived(m.db, p.ID, !p.Archived)
		if err == nil {
			err = m.commit(res)
		}
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		title := res.Project.Title
		if res.Project.Archived {
			return m, tea.Batch(m.navigate(navEvent{kind: navArchived}), m.setStatus("Archived "+title, false))
		}
		return m, tea.Batch(m.navigate(navEvent{kind: navBack}), m.setStatus("Restored "+title, false))
	case "D":
		m.confirm = deleteConfirm(*p)
		return m, nil
	}
	return m, nil
}

func deleteConfirm(p model.Project) *confirmState {
	return &confirmState{action: confirmAction{
		kind:      "delete",
		projectID: p.ID,
		title:     "Delete project?",
		body:      fmt.Sprintf("%q and its whole plan will be removed. This cannot be undone.", p.Title),
		label:     "Delete",
	}}
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	decided, confirmed := m.confirm.update(msg)
	if !decided {
		return m, nil
	}
	action := m.confirm.action
	m.confirm = nil
	if !confirmed {
		return m, nil
	}
	switch action.kind {
	case "delete":
		removed, err := m.store.DeleteProject(m.db, action.projectID)
		if err != nil {
			return m, m.setStatus("Delete failed: "+err.Error(), true)
		}
		if !removed {
			return m, m.setStatus(mutate.NotFoundError{Kind: "project", ID: action.projectID}.Error(), true)
		}
		m.appendEvent("project.delete", action.projectID, map[string]any{})
		m.refreshArchive()
		if m.nav.view == viewArchive {
			return m, m.setStatus("Project deleted", false)
		}
		return m, tea.Batch(m.navigate(navEvent{kind: navDeleted}), m.setStatus("Project deleted", false))
	}
	return m, nil
}

func (m appModel) removeSelectedRow(p model.Project) (tea.Model, tea.Cmd) {
	var (
		res mutate.Result
		err error
	)
	switch m.details.tab {
	case tabShots:
		if m.details.cursor >= len(p.Strategy.Shots) {
			return m, nil
		}
		res, err = mutate.RemoveShot(m.db, p.ID, p.Strategy.Shots[m.details.cursor].ID)
	case tabEditing:
		if m.details.cursor >= len(p.Strategy.EditingPlan) {
			return m, nil
		}
		res, err = mutate.RemoveEditingStep(m.db, p.ID, p.Strategy.EditingPlan[m.details.cursor].ID)
	case tabSchedule:
		rows := scheduleRows(p)
		if m.details.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.details.cursor]
		res, err = mutate.RemoveScheduleItem(m.db, p.ID, row.phase, row.item.ID)
	default:
		return m, nil
	}
	if err == nil {
		err = m.commit(res)
	}
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	if n := m.detailsRowCount(*res.Project); m.details.cursor >= n && n > 0 {
		m.details.cursor = n - 1
	}
	return m, m.setStatus("Removed", false)
}

func (m appModel) updateRefineInput(msg tea.KeyMsg, p model.Project) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.details.refining = false
		m.details.refine.Blur()
		return m, nil
	case "tab":
		if m.details.refineForm == ai.FormShort {
			m.details.refineForm = ai.FormLong
		} else {
			m.details.refineForm = ai.FormShort
		}
		return m, nil
	case "enter":
		instruction := strings.TrimSpace(m.details.refine.Value())
		if instruction == "" {
			m.details.err = "Tell the AI how to refine the script."
			return m, nil
		}
		m.details.refining = false
		m.details.refine.Blur()
		m.details.refine.SetValue("")
		m.details.pending = pendingRefine
		m.details.err = ""
		return m, tea.Batch(m.spinner.Tick, refineCmd(m.ai, m.seq, p.ID, p.Strategy.Script, instruction, m.details.refineForm))
	}
	var cmd tea.Cmd
	m.details.refine, cmd = m.details.refine.Update(msg)
	return m, cmd
}

// detailsResultApplies reports whether an AI result still belongs to the visible project.
func (m appModel) detailsResultApplies(seq int, projectID string) bool {
	return seq == m.seq && m.nav.view == viewProjectDetails && m.nav.projectID == projectID
}

func (m appModel) handleRegenerateMsg(msg regenerateMsg) (tea.Model, tea.Cmd) {
	if !m.detailsResultApplies(msg.seq, msg.projectID) {
		return m, nil
	}
	m.details.pending = ""
	if msg.err != nil {
		m.details.err = aiErrorText(msg.err)
		return m, nil
	}
	res, err := mutate.ApplyStrategy(m.db, msg.projectID, msg.strategy)
	if err == nil {
		err = m.commit(res)
	}
	if err != nil {
		m.details.err = err.Error()
		return m, nil
	}
	m.details.cursor, m.details.scroll = 0, 0
	return m, m.setStatus("New strategy generated", false)
}

func (m appModel) handleRefineMsg(msg refineMsg) (tea.Model, tea.Cmd) {
	if !m.detailsResultApplies(msg.seq, msg.projectID) {
		return m, nil
	}
	m.details.pending = ""
	if msg.err != nil {
		m.details.err = aiErrorText(msg.err)
		return m, nil
	}
	script := msg.script
	res, err := mutate.UpdateFields(m.db, msg.projectID, mutate.ProjectPatch{Script: &script})
	if err == nil {
		err = m.commit(res)
	}
	if err != nil {
		m.details.err = err.Error()
		return m, nil
	}
	m.details.scroll = 0
	return m, m.setStatus("Script refined", false)
}

func (m appModel) handleShotsMsg(msg shotsMsg) (tea.Model, tea.Cmd) {
	if !m.detailsResultApplies(msg.seq, msg.projectID) {
		return m, nil
	}
	m.details.pending = ""
	if msg.err != nil {
		m.details.err = aiErrorText(msg.err)
		return m, nil
	}
	res, err := mutate.ReplaceShots(m.db, msg.projectID, msg.shots)
	if err == nil {
		err = m.commit(res)
	}
	if err != nil {
		m.details.err = err.Error()
		return m, nil
	}
	m.details.tab = tabShots
	m.details.cursor = 0
	return m, m.setStatus(fmt.Sprintf("%d shots generated from the script", len(res.Project.Strategy.Shots)), false)
}

func newEditProjectForm(p model.Project) fieldForm {
	deadline := ""
	if p.Deadline != nil {
		deadline = p.Deadline.Local().Format("2006-01-02")
	}
	return newFieldForm("Edit project",
		newTextField("title", "Title", p.Title, ""),
		newAreaField("idea", "Idea", p.Idea, ""),
		newChoiceField("type", "Content type", contentTypeChoices(), string(p.ContentType)),
		newChoiceField("platform", "Platform", platformChoices(), string(p.Platform)),
		newTextField("deadline", "Deadline (YYYY-MM-DD, blank for none)", deadline, "YYYY-MM-DD"),
		newAreaField("script", "Script", p.Strategy.Script, ""),
	)
}

func (m appModel) updateEditForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.details.edit.update(msg)
	switch outcome {
	case formCanceled:
		m.details.edit = nil
		return m, nil
	case formSubmitted:
		f := m.details.edit
		deadline, err := calendar.ParseOptionalDateTime(f.value("deadline"))
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		title, idea, script := f.value("title"), f.value("idea"), f.rawValue("script")
		ct, pl := model.ContentType(f.value("type")), model.Platform(f.value("platform"))
		patch := mutate.ProjectPatch{Title: &title, Idea: &idea, ContentType: &ct, Platform: &pl, Script: &script}
		if deadline == nil {
			patch.ClearDeadline = true
		} else {
			patch.Deadline = deadline
		}
		res, err := mutate.UpdateFields(m.db, m.nav.projectID, patch)
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		if err := m.commit(res); err != nil {
			f.err = "Save failed: " + err.Error()
			return m, nil
		}
		m.details.edit = nil
		return m, m.setStatus("Project saved", false)
	}
	return m, cmd
}

func newAddItemForm(tab detailsTab) (fieldForm, bool) {
	switch tab {
	case tabShots:
		return newFieldForm("Add shot",
			newTextField("scene", "Scene", "", "e.g. Intro"),
			newTextField("angle", "Angle", "", "e.g. Medium close-up"),
			newTextField("location", "Location", "", ""),
			newTextField("gear", "Gear (comma separated)", "", "e.g. iPhone 15, Ring Light"),
			newTextField("notes", "Notes", "", ""),
		), true
	case tabEditing:
		return newFieldForm("Add editing step",
			newTextField("step", "Step", "", "e.g. Rough cut"),
			newTextField("tools", "Tools (comma separated)", "", "e.g. DaVinci Resolve"),
			newTextField("notes", "Notes", "", ""),
		), true
	case tabSchedule:
		phases := make([]string, 0, len(model.Phases))
		for _, ph := range model.Phases {
			phases = append(phases, string(ph))
		}
		return newFieldForm("Add schedule item",
			newChoiceField("phase", "Phase", phases, string(model.PhaseFilming)),
			newTextField("segment", "Segment", "", "e.g. Intro & office shots"),
			newTextField("date", "Date (YYYY-MM-DD or YYYY-MM-DD HH:MM, optional)", "", "YYYY-MM-DD"),
			newTextField("duration", "Duration in minutes (optional)", "", ""),
			newChoiceField("platform", "Platform", append([]string{"none"}, platformChoices()...), "none"),
		), true
	}
	return fieldForm{}, false
}

func (m appModel) updateItemForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.details.item.update(msg)
	switch outcome {
	case formCanceled:
		m.details.item = nil
		return m, nil
	case formSubmitted:
		f := m.details.item
		editing := m.details.itemRef.id != ""
		var (
			res mutate.Result
			err error
		)
		if editing {
			res, err = m.applyEditItemForm(*f, m.details.itemRef)
		} else {
			res, err = m.applyAddForm(*f)
		}
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		if err := m.commit(res); err != nil {
			f.err = "Save failed: " + err.Error()
			return m, nil
		}
		m.details.item = nil
		m.details.itemRef = itemRef{}
		if editing {
			return m, m.setStatus("Saved", false)
		}
		m.details.cursor = m.detailsRowCount(*res.Project) - 1
		return m, m.setStatus("Added", false)
	}
	return m, cmd
}

// newEditItemForm prefills a form from the selected row of a list tab.
func newEditItemForm(tab detailsTab, p model.Project, row int) (fieldForm, itemRef, bool) {
	if row < 0 {
		return fieldForm{}, itemRef{}, false
	}
	switch tab {
	case tabShots:
		if row >= len(p.Strategy.Shots) {
			break
		}
		sh := p.Strategy.Shots[row]
		return newFieldForm("Edit shot",
			newTextField("scene", "Scene", sh.Scene, ""),
			newTextField("angle", "Angle", sh.Angle, ""),
			newTextField("location", "Location", sh.Location, ""),
			newTextField("gear", "Gear (comma separated)", strings.Join(sh.Gear, ", "), ""),
			newTextField("notes", "Notes", sh.Notes, ""),
		), itemRef{id: sh.ID}, true
	case tabEditing:
		if row >= len(p.Strategy.EditingPlan) {
			break
		}
		st := p.Strategy.EditingPlan[row]
		return newFieldForm("Edit editing step",
			newTextField("step", "Step", st.Step, ""),
			newTextField("tools", "Tools (comma separated)", strings.Join(st.Tools, ", "), ""),
			newTextField("notes", "Notes", st.Notes, ""),
		), itemRef{id: st.ID}, true
	case tabSchedule:
		rows := scheduleRows(p)
		if row >= len(rows) {
			break
		}
		it := rows[row].item
		date, duration, platform := "", "", "none"
		if it.Date != nil {
			date = it.Date.Local().Format("2006-01-02 15:04")
		}
		if it.DurationMin != nil {
			duration = strconv.Itoa(*it.DurationMin)
		}
		if it.Platform != "" {
			platform = it.Platform
		}
		return newFieldForm("Edit "+string(rows[row].phase)+" item",
			newTextField("segment", "Segment", it.Segment, ""),
			newTextField("date", "Date (YYYY-MM-DD or YYYY-MM-DD HH:MM, optional)", date, "YYYY-MM-DD"),
			newTextField("duration", "Duration in minutes (optional)", duration, ""),
			newChoiceField("platform", "Platform", append([]string{"none"}, platformChoices()...), platform),
		), itemRef{id: it.ID, phase: rows[row].phase}, true
	}
	return fieldForm{}, itemRef{}, false
}

func (m appModel) applyEditItemForm(f fieldForm, ref itemRef) (mutate.Result, error) {
	id := m.nav.projectID
	switch m.details.tab {
	case tabShots:
		return mutate.UpdateShot(m.db, id, model.Shot{
			ID:       ref.id,
			Scene:    f.value("scene"),
			Angle:    f.value("angle"),
			Location: f.value("location"),
			Gear:     splitList(f.value("gear")),
			Notes:    f.value("notes"),
		})
	case tabEditing:
		return mutate.UpdateEditingStep(m.db, id, model.EditingStep{
			ID:    ref.id,
			Step:  f.value("step"),
			Tools: splitList(f.value("tools")),
			Notes: f.value("notes"),
		})
	case tabSchedule:
		item, err := scheduleItemFromForm(f)
		if err != nil {
			return mutate.Result{}, err
		}
		item.ID = ref.id
		return mutate.UpdateScheduleItem(m.db, id, ref.phase, item)
	}
	return mutate.Result{}, errors.New("nothing to edit on this tab")
}

func (m appModel) applyAddForm(f fieldForm) (mutate.Result, error) {
	id := m.nav.projectID
	switch m.details.tab {
	case tabShots:
		return mutate.AddShot(m.db, id, model.Shot{
			Scene:    f.value("scene"),
			Angle:    f.value("angle"),
			Location: f.value("location"),
			Gear:     splitList(f.value("gear")),
			Notes:    f.value("notes"),
		})
	case tabEditing:
		return mutate.AddEditingStep(m.db, id, model.EditingStep{
			Step:  f.value("step"),
			Tools: splitList(f.value("tools")),
			Notes: f.value("notes"),
		})
	case tabSchedule:
		item, err := scheduleItemFromForm(f)
		if err != nil {
			return mutate.Result{}, err
		}
		return mutate.AddScheduleItem(m.db, id, model.Phase(f.value("phase")), item)
	}
	return mutate.Result{}, errors.New("nothing to add on this tab")
}

func scheduleItemFromForm(f fieldForm) (model.ScheduleItem, error) {
	date, err := calendar.ParseOptionalDateTime(f.value("date"))
	if err != nil {
		return model.ScheduleItem{}, err
	}
	item := model.ScheduleItem{Segment: f.value("segment"), Date: date}
	if d := f.value("duration"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return model.ScheduleItem{}, mutate.ValidationError{Field: "durationMin", Message: "must be a number"}
		}
		item.DurationMin = &n
	}
	if pl := f.value("platform"); pl != "none" {
		item.Platform = pl
	}
	return item, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contentTypeChoices() []string {
	out := make([]string, 0, len(model.ContentTypes))
	for _, c := range model.ContentTypes {
		out = append(out, string(c))
	}
	return out
}

func platformChoices() []string {
	out := make([]string, 0, len(model.Platforms))
	for _, p := range model.Platforms {
		out = append(out, string(p))
	}
	return out
}

func (m appModel) detailsHelp() string {
	switch {
	case m.details.edit != nil, m.details.item != nil:
		return "tab: next field  ←/→: choose  ctrl+s: save  esc: cancel"
	case m.details.refining:
		return "enter: refine  tab: short/long form  esc: cancel"
	}
	if _, ok := m.currentProject(); !ok {
		return "esc: back"
	}
	base := "tab: next tab  1-5: toggle milestone  e: edit  g: regenerate  a: archive  D: delete  esc: back"
	switch m.details.tab {
	case tabScript:
		return "r: refine  T: template  S: shots from script  j/k: scroll  " + base
	case tabShots:
		return "enter: edit  n: add  x: remove  S: shots from script  " + base
	default:
		return "enter: edit  n: add  x: remove  " + base
	}
}

func (m appModel) viewDetails() string {
	bodyW, bodyH := m.bodySize()
	p, ok := m.currentProject()
	if !ok {
		return m.viewNotFound()
	}
	if m.details.edit != nil {
		return m.details.edit.view()
	}
	if m.details.item != nil {
		return m.details.item.view()
	}

	sideW := 28
	mainW := bodyW - sideW - 3
	if bodyW < 80 {
		sideW = 0
		mainW = bodyW
	}

	head := []string{styleHeading().Render(p.Title)}
	meta := fmt.Sprintf("%s %s %s", p.ContentType, glyphBullet(), p.Platform)
	if p.Deadline != nil {
		meta += "  |  " + deadlineLabel(*p.Deadline, m.now())
	}
	if p.Archived {
		meta += "  |  archived"
	}
	head = append(head, styleMuted().Render(meta))
	head = append(head, truncateToWidth(p.Idea, mainW))
	head = append(head, "", renderTabs(detailsTabNames, int(m.details.tab)), "")

	status := ""
	switch {
	case m.details.pending != "":
		status = m.spinner.View() + " " + pendingLabel(m.details.pending)
	case m.details.err != "":
		status = styleError().Render(m.details.err)
	}
	if m.details.refining {
		form := "short"
		if m.details.refineForm == ai.FormLong {
			form = "long"
		}
		status = m.details.refine.View() + styleMuted().Render("  ["+form+"-form]")
		if m.details.err != "" {
			status += "\n" + styleError().Render(m.details.err)
		}
	}

	tabH := bodyH - len(head) - 2
	if tabH < 3 {
		tabH = 3
	}
	var tabBody string
	switch m.details.tab {
	case tabScript:
		tabBody = m.viewScriptTab(*p, mainW, tabH)
	case tabShots:
		tabBody = m.viewShotsTab(*p, mainW)
	case tabEditing:
		tabBody = m.viewEditingTab(*p, mainW)
	case tabSchedule:
		tabBody = m.viewScheduleTab(*p, mainW)
	}
	main := strings.Join(head, "\n") + "\n" + normalizePane(tabBody, mainW, tabH) + "\n" + status
	if sideW == 0 {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(main, mainW, bodyH),
		"   ",
		normalizePane(viewProgressPanel(*p, sideW), sideW, bodyH),
	)
}

func (m appModel) viewNotFound() string {
	err := mutate.NotFoundError{Kind: "project", ID: m.nav.projectID}
	return styleHeading().Render("Not found") + "\n\n" +
		styleError().Render(err.Error()) + "\n\n" +
		styleMuted().Render("It may have been deleted from another terminal. Press esc to go back.")
}

func pendingLabel(kind string) string {
	switch kind {
	case pendingRegenerate:
		return "Generating a new strategy..."
	case pendingRefine:
		return "Refining script..."
	case pendingShots:
		return "Analyzing script for shots..."
	}
	return "Working..."
}

func viewProgressPanel(p model.Project, width int) string {
	lines := []string{
		styleHeading().Render("Progress"),
		progressBar(p.Progress.Percent, width-6),
		"",
	}
	for i, ms := range model.Milestones {
		line := fmt.Sprintf("%d %s %s", i+1, glyphCheck(p.Progress.Done(ms)), milestoneLabel(ms))
		if p.Progress.Done(ms) {
			line = lipgloss.NewStyle().Foreground(colorSuccessFg).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "",
		styleMuted().Render("created "+fmtDate(p.CreatedAt)),
		styleMuted().Render("updated "+fmtDate(p.UpdatedAt)),
	)
	return strings.Join(lines, "\n")
}

func milestoneLabel(ms model.Milestone) string {
	s := string(ms)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m appModel) viewScriptTab(p model.Project, width, height int) string {
	script := strings.TrimSpace(p.Strategy.Script)
	if script == "" {
		return styleMuted().Render("No script yet. Press g to generate a strategy, T for the template, or e to write one.")
	}
	lines := strings.Split(renderMarkdown(script, width), "\n")
	start := m.details.scroll
	if last := len(lines) - height; start > last {
		start = last
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:], "\n")
}

func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorSurfaceFg)
}

func (m appModel) viewShotsTab(p model.Project, width int) string {
	if len(p.Strategy.Shots) == 0 {
		return styleMuted().Render("No shots. Press n to add one or S to generate them from the script.")
	}
	var b strings.Builder
	for i, sh := range p.Strategy.Shots {
		sel := i == m.details.cursor
		b.WriteString(rowStyle(sel).Render(fitWidth(fmt.Sprintf("%d. %s", i+1, sh.Scene), width)))
		b.WriteString("\n")
		detail := strings.Join(nonEmpty(sh.Angle, sh.Location, strings.Join(sh.Gear, ", ")), "  |  ")
		if detail != "" {
			b.WriteString(styleMuted().Render(truncateToWidth("   "+detail, width)))
			b.WriteString("\n")
		}
		if notes := strings.TrimSpace(sh.Notes); notes != "" {
			b.WriteString(truncateToWidth("   "+notes, width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) viewEditingTab(p model.Project, width int) string {
	if len(p.Strategy.EditingPlan) == 0 {
		return styleMuted().Render("No editing steps. Press n to add one.")
	}
	var b strings.Builder
	for i, st := range p.Strategy.EditingPlan {
		sel := i == m.details.cursor
		b.WriteString(rowStyle(sel).Render(fitWidth(fmt.Sprintf("%d. %s", i+1, st.Step), width)))
		b.WriteString("\n")
		detail := strings.Join(nonEmpty(strings.Join(st.Tools, ", "), st.Notes), "  |  ")
		if detail != "" {
			b.WriteString(styleMuted().Render(truncateToWidth("   "+detail, width)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) viewScheduleTab(p model.Project, width int) string {
	rows := scheduleRows(p)
	var b strings.Builder
	i := 0
	for _, ph := range model.Phases {
		b.WriteString(lipgloss.NewStyle().Foreground(phaseColor(ph)).Bold(true).Render(milestoneLabel(model.Milestone(ph))))
		b.WriteString("\n")
		items := p.Schedule.Items(ph)
		if len(items) == 0 {
			b.WriteString(styleMuted().Render("   nothing scheduled"))
			b.WriteString("\n")
		}
		for _, it := range items {
			when := "no date"
			if it.Date != nil {
				when = it.Date.Local().Format("Mon Jan 2 15:04")
			}
			line := fmt.Sprintf("   %s  %s", when, it.Segment)
			if it.DurationMin != nil {
				line += fmt.Sprintf(" (%d min)", *it.DurationMin)
			}
			if it.Platform != "" {
				line += " @ " + it.Platform
			}
			b.WriteString(rowStyle(i == m.details.cursor && i < len(rows)).Render(fitWidth(line, width)))
			b.WriteString("\n")
			i++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func nonEmpty(xs ...string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if strings.TrimSpace(x) != "" {
			out = append(out, strings.TrimSpace(x))
		}
	}
	return out
}
