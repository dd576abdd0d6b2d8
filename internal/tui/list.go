package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// optionItem implements list.Item for plain string options.
type optionItem string

func (o optionItem) Title() string       { return string(o) }
func (o optionItem) Description() string { return "" }
func (o optionItem) FilterValue() string { return string(o) }

func newOptionList(title string, options []string) list.Model {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = optionItem(opt)
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

// selectModel asks the user to choose exactly one option.
type selectModel struct {
	list      list.Model
	choice    string
	cancelled bool
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{list: newOptionList(title, options)}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	case tea.KeyMsg:
		// Don't steal keys while the user is typing a filter.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	return m.list.View() + helpStyle.Render("\nenter select · / filter · esc cancel") + "\n"
}

// pickModel asks the user to toggle any number of options.
type pickModel struct {
	list      list.Model
	checked   map[string]bool
	order     []string
	cancelled bool
}

func newPickModel(title string, options []string) pickModel {
	return pickModel{
		list:    newOptionList(title, options),
		checked: make(map[string]bool, len(options)),
		order:   append([]string{}, options...),
	}
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-3)
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case " ":
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.checked[string(item)] = !m.checked[string(item)]
			}
			return m, nil
		case "a":
			for _, opt := range m.order {
				m.checked[opt] = true
			}
			return m, nil
		case "enter":
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	count := len(m.picked())
	b.WriteString(checkedStyle.Render(fmt.Sprintf("\n%d selected", count)))
	b.WriteString(helpStyle.Render("\nspace toggle · a all · enter confirm · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// picked returns the checked options in their original order.
func (m pickModel) picked() []string {
	var out []string
	for _, opt := range m.order {
		if m.checked[opt] {
			out = append(out, opt)
		}
	}
	return out
}
