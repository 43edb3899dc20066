package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dargo/pkg/edit"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// UpgradePickerModel - Interactive upgrade selection
// =============================================================================

// UpgradePickerModel lets the user choose which planned upgrades of one
// workspace member to apply. Every upgrade starts out selected.
type UpgradePickerModel struct {
	Member    string
	Changes   []edit.Change
	Chosen    []bool
	Cursor    int
	Confirmed bool
}

// NewUpgradePickerModel creates a picker over changes.
func NewUpgradePickerModel(member string, changes []edit.Change) UpgradePickerModel {
	chosen := make([]bool, len(changes))
	for i := range chosen {
		chosen[i] = true
	}
	return UpgradePickerModel{Member: member, Changes: changes, Chosen: chosen}
}

func (m UpgradePickerModel) Init() tea.Cmd {
	return nil
}

func (m UpgradePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Confirmed = false
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Changes)-1 {
			m.Cursor++
		}
	case " ", "x":
		if len(m.Chosen) > 0 {
			m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
		}
	case "a":
		all := !m.allChosen()
		for i := range m.Chosen {
			m.Chosen[i] = all
		}
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m UpgradePickerModel) allChosen() bool {
	for _, c := range m.Chosen {
		if !c {
			return false
		}
	}
	return true
}

// Selected returns the chosen changes in plan order, or nil when the picker
// was cancelled.
func (m UpgradePickerModel) Selected() []edit.Change {
	if !m.Confirmed {
		return nil
	}
	var out []edit.Change
	for i, c := range m.Changes {
		if m.Chosen[i] {
			out = append(out, c)
		}
	}
	return out
}

func (m UpgradePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select upgrades for " + m.Member))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ apply  q skip"))
	b.WriteString("\n\n")

	width := 0
	for _, c := range m.Changes {
		width = max(width, len(c.Dependency.Name))
	}
	for i, c := range m.Changes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		box := "[ ]"
		if m.Chosen[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %-*s  %s %s %s", cursor, box, width, c.Dependency.Name, c.From, iconArrow, c.To)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Chosen[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickUpgrades runs the picker on the terminal and returns the chosen
// changes. A cancelled picker chooses nothing.
func (c *CLI) pickUpgrades(ctx context.Context, member string, changes []edit.Change) ([]edit.Change, error) {
	p := tea.NewProgram(NewUpgradePickerModel(member, changes),
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(os.Stderr),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(UpgradePickerModel).Selected(), nil
}
