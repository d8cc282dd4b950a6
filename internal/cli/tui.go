package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/inkframe/pkg/rescale"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxWarningRows caps the warnings shown in the confirmation view.
const maxWarningRows = 8

// =============================================================================
// RescaleConfirmModel - Interactive rescale confirmation
// =============================================================================

// RescaleChoice is the user's answer to a rescale plan with warnings.
type RescaleChoice int

const (
	ChoiceCancel  RescaleChoice = iota
	ChoiceApply                 // apply the computed values as they are
	ChoiceAutoFix               // apply and raise values to the device floors
)

var rescaleChoices = []struct {
	choice RescaleChoice
	key    string
	label  string
}{
	{ChoiceAutoFix, "f", "Apply with auto-fix (raise values to the device minimums)"},
	{ChoiceApply, "a", "Apply as computed (keep the warnings)"},
	{ChoiceCancel, "c", "Cancel"},
}

// RescaleConfirmModel is the bubbletea model shown when a rescale plan has
// constraint warnings.
type RescaleConfirmModel struct {
	Plan   rescale.Plan
	Target string
	Cursor int
	Choice RescaleChoice
}

// NewRescaleConfirmModel creates a confirmation model for plan.
func NewRescaleConfirmModel(plan rescale.Plan, target string) RescaleConfirmModel {
	return RescaleConfirmModel{Plan: plan, Target: target}
}

func (m RescaleConfirmModel) Init() tea.Cmd {
	return nil
}

func (m RescaleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Choice = ChoiceCancel
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(rescaleChoices)-1 {
			m.Cursor++
		}
	case "enter":
		m.Choice = rescaleChoices[m.Cursor].choice
		return m, tea.Quit
	default:
		for i, c := range rescaleChoices {
			if key.String() == c.key {
				m.Cursor = i
				m.Choice = c.choice
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m RescaleConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rescale to " + m.Target))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s scale %s", m.Plan.Mode, m.Plan.Scale)))
	b.WriteString("\n\n")

	ws := m.Plan.Warnings
	shown := ws
	if len(shown) > maxWarningRows {
		shown = shown[:maxWarningRows]
	}
	b.WriteString(StyleWarning.Render(fmt.Sprintf("%d constraint %s after scaling",
		len(ws), plural(len(ws), "warning", "warnings"))))
	b.WriteString("\n")
	b.WriteString(warningsTable(shown))
	b.WriteString("\n")
	if extra := len(ws) - len(shown); extra > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … and %d more", extra)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, c := range rescaleChoices {
		line := fmt.Sprintf("  [%s] %s", c.key, c.label)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q cancel"))
	b.WriteString("\n")

	return b.String()
}

// confirmRescale shows the plan and waits for the user's choice.
func confirmRescale(plan rescale.Plan, target string) (RescaleChoice, error) {
	p := tea.NewProgram(NewRescaleConfirmModel(plan, target))
	final, err := p.Run()
	if err != nil {
		return ChoiceCancel, err
	}
	fm, ok := final.(RescaleConfirmModel)
	if !ok {
		return ChoiceCancel, nil
	}
	return fm.Choice, nil
}
