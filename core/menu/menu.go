// Package menu renders the interactive start menu shown when the program is
// launched without arguments.
package menu

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the menu
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// Choice is the action picked in the menu.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceInstall
	ChoiceSync
	ChoiceExit
)

func (c Choice) String() string {
	switch c {
	case ChoiceInstall:
		return "install"
	case ChoiceSync:
		return "sync"
	case ChoiceExit:
		return "exit"
	default:
		return "none"
	}
}

type item struct {
	label  string
	choice Choice
}

// Digits select items by their position.
var items = []item{
	{label: "Install startup task", choice: ChoiceInstall},
	{label: "Sync now", choice: ChoiceSync},
	{label: "Exit", choice: ChoiceExit},
}

// Model is the Bubble Tea model for the menu.
type Model struct {
	title  string
	cursor int
	choice Choice
}

// NewModel creates a menu with the given title. The cursor starts on "Sync now".
func NewModel(title string) Model {
	return Model{title: title, cursor: 1}
}

// Choice returns the selected action, ChoiceNone while the menu is still open.
func (m Model) Choice() Choice {
	return m.choice
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.choice = ChoiceExit
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.choice = items[m.cursor].choice
		return m, tea.Quit
	case "1", "2", "3":
		idx := int(key.String()[0] - '1')
		m.cursor = idx
		m.choice = items[idx].choice
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m Model) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, it := range items {
		line := fmt.Sprintf("%d. %s", i+1, it.label)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move • enter select • 1-3 choose • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the menu on the given terminal streams and returns the selection.
func Run(title string, in io.Reader, out io.Writer) (Choice, error) {
	p := tea.NewProgram(NewModel(title), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return ChoiceNone, fmt.Errorf("menu failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return ChoiceNone, fmt.Errorf("menu returned unexpected model %T", final)
	}
	if m.choice == ChoiceNone {
		return ChoiceExit, nil
	}
	return m.choice, nil
}
