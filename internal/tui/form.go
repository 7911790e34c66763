package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldChoice
)

type formField struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	choices []string
	choice  int
}

// fieldForm is a vertical stack of labeled inputs. tab/shift+tab move focus, left/right
// cycle a choice, ctrl+s submits from anywhere and enter submits from a single-line field.
type fieldForm struct {
	title  string
	fields []formField
	focus  int
	width  int
	err    string
}

type formOutcome int

const (
	formEditing formOutcome = iota
	formSubmitted
	formCanceled
)

func newTextField(key, label, value, placeholder string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 500
	in.SetValue(value)
	return formField{key: key, label: label, kind: fieldText, input: in}
}

func newAreaField(key, label, value, placeholder string) formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.SetValue(value)
	return formField{key: key, label: label, kind: fieldArea, area: ta}
}

func newChoiceField(key, label string, choices []string, value string) formField {
	f := formField{key: key, label: label, kind: fieldChoice, choices: choices}
	for i, c := range choices {
		if c == value {
			f.choice = i
		}
	}
	return f
}

func newFieldForm(title string, fields ...formField) fieldForm {
	f := fieldForm{title: title, fields: fields}
	f.setFocus(0)
	return f
}

func (f *fieldForm) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(f.fields) - 1
	}
	if i >= len(f.fields) {
		i = 0
	}
	f.focus = i
	for j := range f.fields {
		fld := &f.fields[j]
		switch fld.kind {
		case fieldText:
			if j == i {
				fld.input.Focus()
			} else {
				fld.input.Blur()
			}
		case fieldArea:
			if j == i {
				fld.area.Focus()
			} else {
				fld.area.Blur()
			}
		}
	}
}

func (f *fieldForm) setWidth(w int) {
	if w < 20 {
		w = 20
	}
	f.width = w
	for i := range f.fields {
		f.fields[i].input.Width = w - 2
		f.fields[i].area.SetWidth(w - 2)
	}
}

// value returns the trimmed text or the selected choice for key.
func (f fieldForm) value(key string) string {
	for _, fld := range f.fields {
		if fld.key != key {
			continue
		}
		switch fld.kind {
		case fieldText:
			return strings.TrimSpace(fld.input.Value())
		case fieldArea:
			return strings.TrimSpace(fld.area.Value())
		case fieldChoice:
			if fld.choice >= 0 && fld.choice < len(fld.choices) {
				return fld.choices[fld.choice]
			}
		}
	}
	return ""
}

// rawValue is value without trimming (scripts keep their layout).
func (f fieldForm) rawValue(key string) string {
	for _, fld := range f.fields {
		if fld.key == key && fld.kind == fieldArea {
			return fld.area.Value()
		}
	}
	return f.value(key)
}

func (f *fieldForm) update(msg tea.Msg) (formOutcome, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		cur := &f.fields[f.focus]
		switch key.String() {
		case "esc":
			return formCanceled, nil
		case "ctrl+s":
			return formSubmitted, nil
		case "tab":
			f.setFocus(f.focus + 1)
			return formEditing, nil
		case "shift+tab":
			f.setFocus(f.focus - 1)
			return formEditing, nil
		case "enter":
			if cur.kind != fieldArea {
				if f.focus == len(f.fields)-1 {
					return formSubmitted, nil
				}
				f.setFocus(f.focus + 1)
				return formEditing, nil
			}
		case "up":
			if cur.kind != fieldArea {
				f.setFocus(f.focus - 1)
				return formEditing, nil
			}
		case "down":
			if cur.kind != fieldArea {
				f.setFocus(f.focus + 1)
				return formEditing, nil
			}
		case "left", "h":
			if cur.kind == fieldChoice {
				cur.choice = (cur.choice - 1 + len(cur.choices)) % len(cur.choices)
				return formEditing, nil
			}
		case "right", "l", " ":
			if cur.kind == fieldChoice {
				cur.choice = (cur.choice + 1) % len(cur.choices)
				return formEditing, nil
			}
		}
	}

	var cmd tea.Cmd
	cur := &f.fields[f.focus]
	switch cur.kind {
	case fieldText:
		cur.input, cmd = cur.input.Update(msg)
	case fieldArea:
		cur.area, cmd = cur.area.Update(msg)
	}
	return formEditing, cmd
}

func (f fieldForm) view() string {
	labelSt := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	focusLabelSt := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	inputSt := lipgloss.NewStyle().Background(colorInputBg).Foreground(colorSurfaceFg).Padding(0, 1)

	var b strings.Builder
	if f.title != "" {
		b.WriteString(styleHeading().Render(f.title))
		b.WriteString("\n\n")
	}
	for i, fld := range f.fields {
		lbl := labelSt
		if i == f.focus {
			lbl = focusLabelSt
		}
		b.WriteString(lbl.Render(fld.label))
		b.WriteString("\n")
		switch fld.kind {
		case fieldText:
			b.WriteString(inputSt.Render(fld.input.View()))
		case fieldArea:
			b.WriteString(fld.area.View())
		case fieldChoice:
			b.WriteString(renderChoices(fld.choices, fld.choice, i == f.focus))
		}
		b.WriteString("\n\n")
	}
	if f.err != "" {
		b.WriteString(styleError().Render(f.err))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderChoices(choices []string, selected int, focused bool) string {
	parts := make([]string, 0, len(choices))
	for i, c := range choices {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorChromeMutedFg)
		if i == selected {
			st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
			if !focused {
				st = st.Foreground(colorSelectedFg).Background(colorSelectedBg)
			}
		}
		parts = append(parts, st.Render(c))
	}
	return strings.Join(parts, " ")
}
