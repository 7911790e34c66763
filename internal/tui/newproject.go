package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"frameflow-cli/internal/calendar"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
)

const (
	strategyGenerate = "generate with AI"
	strategyEmpty    = "start empty"
)

type newProjectState struct {
	form    fieldForm
	pending bool
}

func newNewProjectState() newProjectState {
	return newProjectState{form: newFieldForm("",
		newTextField("title", "Title", "", "e.g. A day in the life of a developer"),
		newAreaField("idea", "Idea", "", "What is the video about?"),
		newChoiceField("type", "Content type", contentTypeChoices(), string(model.ContentVlog)),
		newChoiceField("platform", "Platform", platformChoices(), string(model.PlatformYouTube)),
		newTextField("deadline", "Deadline (YYYY-MM-DD, optional)", "", "YYYY-MM-DD"),
		newChoiceField("strategy", "Plan", []string{strategyGenerate, strategyEmpty}, strategyGenerate),
	)}
}

func (m appModel) updateNewProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.newForm.pending {
		if msg.String() == "esc" {
			return m, m.navigate(navEvent{kind: navBack})
		}
		return m, nil
	}
	outcome, cmd := m.newForm.form.update(msg)
	switch outcome {
	case formCanceled:
		return m, m.navigate(navEvent{kind: navBack})
	case formSubmitted:
		return m.submitNewProject()
	}
	return m, cmd
}

func (m appModel) submitNewProject() (tea.Model, tea.Cmd) {
	f := &m.newForm.form
	if f.value("title") == "" || f.value("idea") == "" {
		f.err = "Title and Idea are required."
		return m, nil
	}
	deadline, err := calendar.ParseOptionalDateTime(f.value("deadline"))
	if err != nil {
		f.err = err.Error()
		return m, nil
	}
	in := mutate.ProjectInput{
		Title:       f.value("title"),
		Idea:        f.value("idea"),
		ContentType: model.ContentType(f.value("type")),
		Platform:    model.Platform(f.value("platform")),
		Deadline:    deadline,
	}
	if err := in.Validate(); err != nil {
		f.err = err.Error()
		return m, nil
	}
	f.err = ""
	if f.value("strategy") == strategyEmpty {
		return m.createProject(in, model.Strategy{})
	}
	if m.ai == nil {
		f.err = errNoAI + ` Choose "start empty" to skip it.`
		return m, nil
	}
	m.newForm.pending = true
	return m, tea.Batch(m.spinner.Tick, generateStrategyCmd(m.ai, m.seq, in))
}

func (m appModel) handleStrategyMsg(msg strategyMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.nav.view != viewNewProject {
		return m, nil
	}
	m.newForm.pending = false
	if msg.err != nil {
		// The form keeps its values so the user can retry.
		m.newForm.form.err = aiErrorText(msg.err)
		return m, nil
	}
	return m.createProject(msg.input, msg.strategy)
}

func (m appModel) createProject(in mutate.ProjectInput, strategy model.Strategy) (tea.Model, tea.Cmd) {
	p, err := mutate.NewProject(m.db, in, strategy)
	if err != nil {
		m.newForm.form.err = err.Error()
		return m, nil
	}
	if err := m.store.CreateProject(m.db, p); err != nil {
		m.newForm.form.err = "Save failed: " + err.Error()
		return m, nil
	}
	m.appendEvent("project.create", p.ID, mutate.CreatedPayload(p))
	m.dashboardTab = dashboardActive
	nav := m.navigate(navEvent{kind: navCreated, projectID: p.ID})
	selectProjectByID(&m.projectsList, p.ID)
	return m, tea.Batch(nav, m.setStatus("Created "+p.Title, false))
}

func (m appModel) viewNewProject() string {
	bodyW, _ := m.bodySize()
	m.newForm.form.setWidth(modalBodyWidth(bodyW))
	out := m.newForm.form.view()
	if m.newForm.pending {
		out += "\n\n" + m.spinner.View() + " Generating a strategy..."
	}
	return out
}
