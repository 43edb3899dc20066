package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dargo/pkg/edit"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan    = lipgloss.Color("36")  // Teal - primary actions
	colorGreen   = lipgloss.Color("35")  // Green - new versions
	colorYellow  = lipgloss.Color("220") // Amber - warnings
	colorMagenta = lipgloss.Color("170") // Magenta - package headers
	colorWhite   = lipgloss.Color("255") // Bright white - values
	colorGray    = lipgloss.Color("245") // Gray - secondary text
	colorDim     = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StylePackage for workspace member headers.
	StylePackage = lipgloss.NewStyle().Foreground(colorMagenta)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleSuccess for success messages and new versions.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleOld for replaced versions.
	StyleOld = lipgloss.NewStyle().Strikethrough(true).Foreground(colorGray)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleName = lipgloss.NewStyle().Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "->"
)

// =============================================================================
// Status Output
// =============================================================================

func (c *CLI) printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func (c *CLI) printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func (c *CLI) printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func (c *CLI) printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(msg))
}

// =============================================================================
// Plan Output
// =============================================================================

// printWarnings reports the per-item outcomes of a plan on the console and
// in the log.
func (c *CLI) printWarnings(p *edit.Plan) {
	for _, w := range p.Warnings {
		if w.Code != "" {
			c.Logger.Warn(w.Message, "crate", w.Name, "code", w.Code)
		} else {
			c.Logger.Warn(w.Message, "crate", w.Name)
		}
		c.printWarning("%s", w.Message)
	}
}

// printAdds renders "Adding name  requirement  section" rows.
func (c *CLI) printAdds(changes []edit.Change) {
	rows := make([][]string, len(changes))
	for i, ch := range changes {
		rows[i] = []string{"Adding " + ch.Dependency.Name, ch.To, ch.Dependency.Section()}
	}
	c.printColumns(rows, func(col int) lipgloss.Style {
		if col == 1 {
			return StyleSuccess
		}
		return lipgloss.NewStyle()
	})
}

// printRemovals renders "Removing name  section" rows.
func (c *CLI) printRemovals(changes []edit.Change) {
	rows := make([][]string, len(changes))
	for i, ch := range changes {
		rows[i] = []string{"Removing " + ch.Dependency.Name, ch.Dependency.Section()}
	}
	c.printColumns(rows, func(col int) lipgloss.Style {
		if col == 0 {
			return styleName
		}
		return lipgloss.NewStyle()
	})
}

// printUpgrades renders a member header followed by "name  old -> new" rows.
func (c *CLI) printUpgrades(member string, changes []edit.Change) {
	fmt.Fprintln(c.Out, StylePackage.Render(member+":"))
	rows := make([][]string, len(changes))
	for i, ch := range changes {
		rows[i] = []string{ch.Dependency.Name, ch.From, iconArrow, ch.To}
	}
	c.printColumns(rows, func(col int) lipgloss.Style {
		switch col {
		case 1:
			return StyleOld
		case 3:
			return StyleSuccess
		}
		return lipgloss.NewStyle()
	})
}

// printColumns prints rows as borderless, left-aligned columns.
func (c *CLI) printColumns(rows [][]string, style func(col int) lipgloss.Style) {
	if len(rows) == 0 {
		return
	}
	last := len(rows[0]) - 1
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := style(col)
			if col < last {
				s = s.PaddingRight(2)
			}
			return s
		})
	for _, line := range strings.Split(t.Render(), "\n") {
		fmt.Fprintln(c.Out, strings.TrimRight(line, " "))
	}
}
