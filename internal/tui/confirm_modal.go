package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusCancel confirmModalFocus = iota
	confirmFocusConfirm
)

// confirmAction is the pending destructive action behind an open confirm modal.
type confirmAction struct {
	kind      string // "delete"
	projectID string
	title     string
	body      string
	label     string
}

// confirmState is the open confirm modal. Focus starts on cancel.
type confirmState struct {
	action confirmAction
	focus  confirmModalFocus
}

// update handles keys while the modal is open. decided reports whether the modal closes;
// confirmed whether the action should run.
func (c *confirmState) update(msg tea.KeyMsg) (decided, confirmed bool) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if c.focus == confirmFocusCancel {
			c.focus = confirmFocusConfirm
		} else {
			c.focus = confirmFocusCancel
		}
	case "enter":
		return true, c.focus == confirmFocusConfirm
	case "y":
		return true, true
	case "esc", "n", "ctrl+g":
		return true, false
	}
	return false, false
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested borders inside a colored modal leave artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorAccentFg).
		Background(colorErrorFg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Background(colorSelectedBg).Foreground(colorSelectedFg).Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm)
	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y: confirm   esc: cancel")

	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, title, content)
}
