// UMBRA ⸻ internal/prompt/input.go
// modal label prompt

package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sombra/internal/util"
)

type inputModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(initial string) inputModel {
	ti := textinput.New()
	ti.Placeholder = "label text"
	ti.CharLimit = 128
	ti.Width = 48
	ti.SetValue(initial)
	ti.Focus()

	return inputModel{input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			// an empty submission counts as backing out
			if m.Value() == "" {
				m.cancelled = true
			}
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	var sb strings.Builder

	sb.WriteString(util.NTC.Render("Label for this image"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(util.SUB.Render("(enter to confirm, esc to cancel)"))
	sb.WriteString("\n")

	return sb.String()
}

// value with surrounding whitespace removed
func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// asks for the label text; ok is false when the user cancels or submits an
// empty label
func AskLabel(initial string) (string, bool, error) {
	program := tea.NewProgram(newInputModel(initial))

	final, err := program.Run()
	if err != nil {
		return "", false, err
	}

	m := final.(inputModel)
	if m.cancelled || m.Value() == "" {
		return "", false, nil
	}

	return m.Value(), true, nil
}
