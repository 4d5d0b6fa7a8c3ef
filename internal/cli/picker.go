package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// pendingChange is one rewrite the update command wants to apply.
type pendingChange struct {
	Alias string
	From  string
	To    string
}

// =============================================================================
// pickerModel - Interactive change selection
// =============================================================================

// pickerModel is the bubbletea model for choosing which upgrades to apply.
// Every change starts selected; space toggles, enter confirms, q aborts.
type pickerModel struct {
	Changes  []pendingChange
	Checked  []bool
	Cursor   int
	Aborted  bool
	Accepted bool
}

func newPickerModel(changes []pendingChange) pickerModel {
	checked := make([]bool, len(changes))
	for i := range checked {
		checked[i] = true
	}
	return pickerModel{Changes: changes, Checked: checked}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Changes)-1 {
			m.Cursor++
		}
	case " ", "space":
		m.Checked[m.Cursor] = !m.Checked[m.Cursor]
	case "a":
		for i := range m.Checked {
			m.Checked[i] = true
		}
	case "n":
		for i := range m.Checked {
			m.Checked[i] = false
		}
	case "enter":
		m.Accepted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select upgrades to apply"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ apply  q abort"))
	b.WriteString("\n\n")

	for i, change := range m.Changes {
		cursor := "  "
		if i == m.Cursor {
			cursor = listCursorStyle.Render("▸ ")
		}
		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}
		line := cursor + check + " " + listNormalStyle.Render(change.Alias) + " " +
			listDimStyle.Render(change.From+" "+iconArrow+" ") + StyleSuccess.Render(change.To)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// pickChanges runs the interactive picker and returns the approved subset.
// A nil slice with nil error means the user aborted.
func pickChanges(changes []pendingChange) ([]pendingChange, error) {
	program := tea.NewProgram(newPickerModel(changes))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(pickerModel)
	if !ok || m.Aborted || !m.Accepted {
		return nil, nil
	}
	var picked []pendingChange
	for i, change := range m.Changes {
		if m.Checked[i] {
			picked = append(picked, change)
		}
	}
	return picked, nil
}
