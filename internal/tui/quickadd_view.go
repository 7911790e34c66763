package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/quickadd"
)

type quickAddState struct {
	session *quickadd.Session
	input   textinput.Model
	// project is set once the session created one.
	project *model.Project
}

func newQuickAddState() quickAddState {
	in := textinput.New()
	in.Prompt = glyphCursor() + " "
	in.Placeholder = "Type your answer"
	in.CharLimit = 1000
	return quickAddState{session: quickadd.New(), input: in}
}

func (m appModel) updateQuickAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.navigate(navEvent{kind: navBack})
	case "enter":
		if m.quick.project != nil {
			return m, m.navigate(openProject(m.quick.project.ID))
		}
		if !m.quick.session.Accepting() {
			return m, nil
		}
		req, err := m.quick.session.Submit(m.quick.input.Value())
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.quick.input.SetValue("")
		if req == nil {
			return m, nil
		}
		if m.ai == nil {
			_ = m.quick.session.Fail(errors.New("ai client not configured"))
			return m, m.setStatus(errNoAI, true)
		}
		return m, tea.Batch(m.spinner.Tick, quickAddCmd(m.ai, m.seq, *req))
	}
	if !m.quick.session.Accepting() {
		return m, nil
	}
	var cmd tea.Cmd
	m.quick.input, cmd = m.quick.input.Update(msg)
	return m, cmd
}

func (m appModel) handleQuickAddMsg(msg quickAddMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.nav.view != viewQuickAdd {
		return m, nil
	}
	if msg.err != nil {
		if err := m.quick.session.Fail(msg.err); err != nil {
			return m, nil
		}
		return m, m.setStatus(aiErrorText(msg.err), true)
	}
	p, err := m.quick.session.Complete(msg.strategy, m.db.NextProjectID(), m.now())
	if err != nil {
		return m, nil
	}
	if err := m.store.CreateProject(m.db, p); err != nil {
		return m, m.setStatus("Save failed: "+err.Error(), true)
	}
	m.appendEvent("project.create", p.ID, mutate.CreatedPayload(p))
	m.quick.project = &p
	m.refreshProjects()
	return m, m.setStatus("Created "+p.Title, false)
}

func (m appModel) viewQuickAdd() string {
	bodyW, _ := m.bodySize()
	w := modalBodyWidth(bodyW) + 10
	if w > bodyW {
		w = bodyW
	}
	botSt := lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorControlBg).Padding(0, 1).Width(w * 3 / 4)
	userSt := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1).Width(w * 3 / 4).Align(lipgloss.Right)

	var b strings.Builder
	for _, msg := range m.quick.session.Messages() {
		if msg.FromUser {
			b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Right, userSt.Render(msg.Text)))
		} else {
			b.WriteString(botSt.Render(msg.Text))
		}
		b.WriteString("\n\n")
	}

	switch {
	case m.quick.project != nil:
		b.WriteString(styleAccent().Render("Press enter to open " + m.quick.project.Title + ", esc for the dashboard."))
	case m.quick.session.State() == quickadd.Generating:
		b.WriteString(m.spinner.View() + " Generating...")
	default:
		b.WriteString(m.quick.input.View())
	}
	return b.String()
}
