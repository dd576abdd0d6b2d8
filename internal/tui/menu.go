// internal/tui/menu.go
//
// The command menu is the host's "ribbon": it lists every registered
// command (built-ins plus manifest plugins) and launches the one the user
// picks. Bubbletea follows The Elm Architecture: Model, Update, View.

package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/journal"
)

// RunSummary is what the menu shows about the previous command run.
type RunSummary struct {
	Title   string
	Status  command.Status
	Message string
	Report  []string
}

// menuState represents which screen the menu is on.
type menuState int

const (
	stateList   menuState = iota // command list
	stateDoc                     // markdown help for one command
	stateRecent                  // recent runs from the journal
)

type commandItem struct {
	info command.Info
}

func (i commandItem) Title() string       { return i.info.Title }
func (i commandItem) Description() string { return i.info.Description }
func (i commandItem) FilterValue() string { return i.info.Title }

type menuModel struct {
	list      list.Model
	infos     []command.Info
	journal   *journal.Journal
	last      *RunSummary
	state     menuState
	docBody   string
	recent    []journal.Entry
	recentErr error
	status    string
	choice    string
	width     int
	height    int
}

func newMenuModel(infos []command.Info, j *journal.Journal, last *RunSummary) menuModel {
	items := make([]list.Item, len(infos))
	for i, info := range infos {
		items[i] = commandItem{info: info}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "⌬ ARMATURE"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return menuModel{list: l, infos: infos, journal: j, last: last}
}

// RunMenu shows the command menu and returns the chosen command ID, or ""
// when the user quit.
func RunMenu(infos []command.Info, j *journal.Journal, last *RunSummary) (string, error) {
	final, err := tea.NewProgram(newMenuModel(infos, j, last), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("tui: menu: %w", err)
	}
	return final.(menuModel).choice, nil
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateDoc, stateRecent:
			m.state = stateList
			return m, nil
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(commandItem); ok {
				m.choice = item.info.ID
				return m, tea.Quit
			}
		case "?":
			if item, ok := m.list.SelectedItem().(commandItem); ok {
				m.docBody = renderDoc(item.info)
				m.state = stateDoc
			}
			return m, nil
		case "r":
			m.recent, m.recentErr = m.journal.Recent(10)
			m.state = stateRecent
			return m, nil
		case "c":
			m.status = m.copyLastReport()
			return m, nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// copyLastReport puts the previous run's report on the system clipboard.
func (m menuModel) copyLastReport() string {
	if m.last == nil || len(m.last.Report) == 0 {
		return "nothing to copy"
	}
	if err := clipboard.WriteAll(strings.Join(m.last.Report, "\n")); err != nil {
		return errStyle.Render(fmt.Sprintf("clipboard: %v", err))
	}
	return "report copied to clipboard"
}

func (m menuModel) View() string {
	switch m.state {
	case stateDoc:
		return m.docBody + helpStyle.Render("\npress any key to go back") + "\n"
	case stateRecent:
		return m.recentView()
	}
	var b strings.Builder
	b.WriteString(m.list.View())
	if m.last != nil {
		line := fmt.Sprintf("last run: %s — %s", m.last.Title, m.last.Status)
		b.WriteString("\n" + statusStyle.Render(line))
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	b.WriteString(helpStyle.Render("\nenter run · ? help · r recent · c copy report · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m menuModel) recentView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent runs"))
	b.WriteString("\n")
	if m.recentErr != nil {
		b.WriteString(errStyle.Render(m.recentErr.Error()) + "\n")
	} else if len(m.recent) == 0 {
		b.WriteString("no runs recorded yet\n")
	}
	for _, entry := range m.recent {
		b.WriteString(fmt.Sprintf(
			"%s  %-14s %-10s %s\n",
			entry.StartedAt.Local().Format("2006-01-02 15:04"),
			entry.Command,
			entry.Status,
			firstLine(entry.Message),
		))
	}
	b.WriteString(helpStyle.Render("\npress any key to go back"))
	b.WriteString("\n")
	return b.String()
}

// renderDoc renders a command's markdown help; plain text is the fallback
// when the renderer is unhappy.
func renderDoc(info command.Info) string {
	body := info.Doc
	if body == "" {
		body = "# " + info.Title + "\n\n" + info.Description
	}
	rendered, err := glamour.Render(body, "dark")
	if err != nil {
		return body
	}
	return rendered
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
