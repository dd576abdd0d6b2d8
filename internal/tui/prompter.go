// internal/tui/prompter.go
//
// Terminal implementation of the ui.Prompter dialog surface. Each prompt
// runs as its own small bubbletea program, blocking the command until the
// user answers or cancels. That matches the modal semantics of the host
// dialog toolkit.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/armatureproject/armature/internal/ui"
)

// Prompter implements ui.Prompter on the terminal.
type Prompter struct{}

// NewPrompter returns a terminal prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Alert implements ui.Prompter.
func (p *Prompter) Alert(title, message string) error {
	model := alertModel{title: title, message: message}
	_, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("tui: alert: %w", err)
	}
	return nil
}

// AskString implements ui.Prompter.
func (p *Prompter) AskString(title, prompt, defaultValue string) (string, error) {
	input := textinput.New()
	input.SetValue(defaultValue)
	input.CursorEnd()
	input.Focus()
	model := askModel{title: title, prompt: prompt, input: input}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("tui: ask string: %w", err)
	}
	result := final.(askModel)
	if result.cancelled {
		return "", ui.ErrCancelled
	}
	return result.input.Value(), nil
}

// AskForm implements ui.Prompter.
func (p *Prompter) AskForm(title string, fields []ui.Field) (map[string]string, error) {
	final, err := tea.NewProgram(newFormModel(title, fields)).Run()
	if err != nil {
		return nil, fmt.Errorf("tui: form: %w", err)
	}
	result := final.(formModel)
	if result.cancelled {
		return nil, ui.ErrCancelled
	}
	return result.values(), nil
}

// SelectFromList implements ui.Prompter.
func (p *Prompter) SelectFromList(title string, options []string) (string, error) {
	final, err := tea.NewProgram(newSelectModel(title, options), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("tui: select: %w", err)
	}
	result := final.(selectModel)
	if result.cancelled || result.choice == "" {
		return "", ui.ErrCancelled
	}
	return result.choice, nil
}

// PickMany implements ui.Prompter.
func (p *Prompter) PickMany(title string, options []string) ([]string, error) {
	final, err := tea.NewProgram(newPickModel(title, options), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("tui: pick: %w", err)
	}
	result := final.(pickModel)
	if result.cancelled {
		return nil, ui.ErrCancelled
	}
	return result.picked(), nil
}

// alertModel shows a modal message until any key is pressed.
type alertModel struct {
	title   string
	message string
}

func (m alertModel) Init() tea.Cmd { return nil }

func (m alertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m alertModel) View() string {
	body := titleStyle.Render(m.title) + "\n" + m.message
	return alertStyle.Render(body) + helpStyle.Render("\npress any key to continue") + "\n"
}

// askModel collects one line of text.
type askModel struct {
	title     string
	prompt    string
	input     textinput.Model
	cancelled bool
}

func (m askModel) Init() tea.Cmd { return textinput.Blink }

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	return titleStyle.Render(m.title) + "\n" +
		promptStyle.Render(m.prompt) + "\n" +
		m.input.View() +
		helpStyle.Render("\nenter confirm · esc cancel") + "\n"
}
