package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// ConfirmModel is a yes/no prompt. Anything but an explicit yes declines.
type ConfirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

// NewConfirm creates a confirmation prompt.
func NewConfirm(prompt string) ConfirmModel {
	return ConfirmModel{prompt: prompt}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter", "q", "esc", "ctrl+c":
		m.confirmed = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	return warnStyle.Render("⚠ ") + promptStyle.Render(m.prompt) + " [y/N] "
}

// Confirmed reports whether the operator answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// RunConfirm shows prompt and waits for a yes/no answer.
func RunConfirm(prompt string, opts ...tea.ProgramOption) (bool, error) {
	p := tea.NewProgram(NewConfirm(prompt), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	return finalModel.(ConfirmModel).Confirmed(), nil
}
