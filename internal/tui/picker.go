package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Option lifecycle.DeleteOption
}

// optionItem implements list.Item for a delete option
type optionItem struct {
	option lifecycle.DeleteOption
	detail string
}

func (i optionItem) Title() string {
	return i.option.String()
}

func (i optionItem) Description() string {
	if i.detail == "" {
		return i.option.Description()
	}
	return i.option.Description() + " (" + i.detail + ")"
}

func (i optionItem) FilterValue() string {
	return i.option.String()
}

// optionDetail summarises what an option would remove for c.
func optionDetail(c *registry.StatefulContainer, opt lifecycle.DeleteOption) string {
	tags := c.SnapshotTags()
	switch opt {
	case lifecycle.DeleteAllSnapshots:
		return plural(len(tags), "image")
	case lifecycle.DeleteKeepLatestSnapshot:
		if len(tags) == 0 {
			return plural(0, "image")
		}
		return plural(len(tags)-1, "image")
	default:
		return ""
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the delete option picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a picker offering the delete options for c
func NewPicker(c *registry.StatefulContainer) Model {
	items := make([]list.Item, len(lifecycle.DeleteOptions))
	for i, opt := range lifecycle.DeleteOptions {
		items[i] = optionItem{option: opt, detail: optionDetail(c, opt)}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 14)
	l.Title = fmt.Sprintf("Delete %s - choose what to remove", c.Name)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.result = PickerResult{Action: ActionSelect, Option: item.option}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc", "ctrl+c":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Select  [↑/↓] Move  [q] Cancel")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker asks the operator how c should be deleted
func RunPicker(c *registry.StatefulContainer, opts ...tea.ProgramOption) (PickerResult, error) {
	p := tea.NewProgram(NewPicker(c), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
