package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/armatureproject/armature/internal/ui"
)

// formModel collects several labelled text fields at once, the way the
// host's flex-form dialog does. Tab and arrow keys move between fields,
// enter submits the whole form, esc cancels.
type formModel struct {
	title     string
	fields    []ui.Field
	inputs    []textinput.Model
	focus     int
	cancelled bool
}

func newFormModel(title string, fields []ui.Field) formModel {
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		input := textinput.New()
		input.SetValue(field.Default)
		input.CursorEnd()
		if i == 0 {
			input.Focus()
		}
		inputs[i] = input
	}
	return formModel{title: title, fields: fields, inputs: inputs}
}

func (m formModel) Init() tea.Cmd { return textinput.Blink }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) moveFocus(delta int) formModel {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, field := range m.fields {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(field.Label+":") + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
	}
	b.WriteString(helpStyle.Render("tab next field · enter confirm · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m formModel) values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for i, field := range m.fields {
		out[field.Key] = m.inputs[i].Value()
	}
	return out
}
