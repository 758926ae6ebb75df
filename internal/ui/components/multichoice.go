package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector for one quiz question.
// Choosing an option only marks it; correctness is never revealed.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int // -1 when nothing is chosen
}

// NewMultiChoice creates a selector with chosen pre-marked when it is one
// of options.
func NewMultiChoice(question string, options []string, chosen string) MultiChoice {
	m := MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
	for i, o := range options {
		if o == chosen && chosen != "" {
			m.Chosen = i
			m.Cursor = i
			break
		}
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and choosing. Number keys choose the
// matching option directly; space chooses the option under the cursor.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space":
		if len(m.Options) > 0 {
			m.Chosen = m.Cursor
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Chosen = i
				m.Cursor = i
			}
		}
	}

	return m, nil
}

// ChosenOption returns the text of the chosen option.
func (m MultiChoice) ChosenOption() (string, bool) {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return "", false
	}
	return m.Options[m.Chosen], true
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case i == m.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
