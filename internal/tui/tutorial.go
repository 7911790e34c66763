package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"frameflow-cli/internal/docs"
)

// tutorialState is the first-run tour overlay. Finishing or skipping it marks it completed.
type tutorialState struct {
	open bool
	step int
}

func (m appModel) updateTutorial(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	steps := docs.TutorialSteps()
	switch msg.String() {
	case "right", "l", "enter", " ":
		if m.tutorial.step < len(steps)-1 {
			m.tutorial.step++
			return m, nil
		}
		return m.closeTutorial()
	case "left", "h":
		if m.tutorial.step > 0 {
			m.tutorial.step--
		}
		return m, nil
	case "esc", "q", "s":
		return m.closeTutorial()
	}
	return m, nil
}

func (m appModel) closeTutorial() (tea.Model, tea.Cmd) {
	m.tutorial = tutorialState{}
	if err := m.store.SetTutorialCompleted(m.db, true); err != nil {
		return m, m.setStatus("Save failed: "+err.Error(), true)
	}
	m.captureStoreModTimes()
	return m, nil
}

func (t tutorialState) view(width int) string {
	steps := docs.TutorialSteps()
	if len(steps) == 0 {
		return ""
	}
	i := t.step
	if i >= len(steps) {
		i = len(steps) - 1
	}
	st := steps[i]
	bodyW := modalBodyWidth(width)

	dots := make([]string, len(steps))
	for j := range steps {
		if j == i {
			dots[j] = styleAccent().Render(glyphBullet())
		} else {
			dots[j] = styleMuted().Render(glyphBullet())
		}
	}
	next := "enter: next"
	if i == len(steps)-1 {
		next = "enter: finish"
	}
	body := strings.TrimSpace(renderMarkdown(st.Content, bodyW)) + "\n\n" +
		strings.Join(dots, " ") + "  " + styleMuted().Render(fmt.Sprintf("%d/%d", i+1, len(steps))) + "\n" +
		styleMuted().Render(next + "  ←/→: step  esc: skip")
	return renderModalBox(width, st.Title, body)
}
