package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"frameflow-cli/internal/mutate"
)

func (m appModel) updateArchive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	it, hasItem := m.archiveList.SelectedItem().(projectItem)
	switch msg.String() {
	case "esc", "backspace", "q":
		return m, m.navigate(navEvent{kind: navBack})
	case "enter":
		if hasItem {
			return m, m.navigate(openProject(it.project.ID))
		}
		return m, nil
	case "u":
		if !hasItem {
			return m, nil
		}
		res, err := mutate.SetProjectArchived(m.db, it.project.ID, false)
		if err == nil {
			err = m.commit(res)
		}
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.refreshArchive()
		m.refreshProjects()
		return m, m.setStatus("Restored "+it.project.Title, false)
	case "D":
		if hasItem {
			m.confirm = deleteConfirm(it.project)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.archiveList, cmd = m.archiveList.Update(msg)
	return m, cmd
}

func (m appModel) viewArchive() string {
	n := len(m.archiveList.Items())
	head := styleHeading().Render(fmt.Sprintf("Archived projects (%d)", n))
	if n == 0 {
		return head + "\n\n" + styleMuted().Render("Nothing archived. Press a on a project to archive it.")
	}
	return head + "\n\n" + m.archiveList.View()
}
