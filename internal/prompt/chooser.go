// UMBRA ⸻ internal/prompt/chooser.go
// three-way save mode chooser

package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sombra/internal/label"
	"sombra/internal/util"
)

var choices = []string{
	"Overwrite original",
	"Save a copy",
	"Cancel",
}

type chooserModel struct {
	cursor    int
	done      bool
	cancelled bool
}

func (m chooserModel) Init() tea.Cmd {
	return nil
}

func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyUp, tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown, tea.KeyRight, tea.KeyTab:
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		m.done = true
		m.cancelled = m.cursor == 2
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyCtrlC:
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	}

	// quick keys
	switch key.String() {
	case "o":
		m.cursor = 0
		m.done = true
		return m, tea.Quit
	case "c":
		m.cursor = 1
		m.done = true
		return m, tea.Quit
	case "q":
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m chooserModel) View() string {
	var sb strings.Builder

	sb.WriteString(util.NTC.Render("How should the result be saved?"))
	sb.WriteString("\n\n")

	for i, choice := range choices {
		if i == m.cursor {
			sb.WriteString(util.LBL.Render("  > " + choice))
		} else {
			sb.WriteString(util.SUB.Render("    " + choice))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(util.SUB.Render("(o = overwrite, c = copy, esc = cancel)"))
	sb.WriteString("\n")

	return sb.String()
}

// asks how to persist; ok is false when the user cancels
func AskMode() (label.Mode, bool, error) {
	program := tea.NewProgram(chooserModel{})

	final, err := program.Run()
	if err != nil {
		return label.ModeCopy, false, err
	}

	m := final.(chooserModel)
	if m.cancelled {
		return label.ModeCopy, false, nil
	}

	if m.cursor == 0 {
		return label.ModeOverwrite, true, nil
	}
	return label.ModeCopy, true, nil
}
